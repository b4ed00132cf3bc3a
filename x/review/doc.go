/*
Package review aggregates the scores registered reviewers give to
proposals.

Every review is kept in the history of its reviewer, in the order it was
submitted. The score sum and review count of the proposal are updated in
the same call. A reviewer may review the same proposal many times and
each review counts.
*/
package review
