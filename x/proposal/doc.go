/*
Package proposal is the ledger of research proposals competing for funds.

A proposal is identified by the content identifier of its document. It is
submitted once, accumulates review scores (see package review) and is
eventually marked as funded (see package fund). Proposals are never
deleted.
*/
package proposal
