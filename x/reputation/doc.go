/*
Package reputation lets governance members vote on the trust of
reviewers.

Trust is a moving average: every vote replaces the trust with the mean of
the current trust and the vote, rounded down. A principal that was never
registered receives an implicit record, starting from zero trust, that
does not make it a reviewer.
*/
package reputation
