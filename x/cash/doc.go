/*
Package cash keeps a single denomination balance for every address and
moves value between them.

The balance of a wallet never goes below zero. A receiver can be
registered for an address. It is called every time that address is
credited by MoveCoins and its failure aborts the transfer. Receivers are
not trusted: they may call back into the application, so callers moving
value must write their own state before the transfer.
*/
package cash
