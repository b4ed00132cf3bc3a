/*
Package fund keeps the pool of contributions and releases funds to the
beneficiary of a proposal once its reviews pass the approval threshold.

The value of the pool is held by the cash wallet of PoolAddress. The pool
balance is tracked separately and always equals the deposits minus the
allocated budgets.

Allocation is the only operation handing value to untrusted code, the
receiver of the beneficiary. The pool balance and the funded flag are
written before the transfer and the allocation cannot be entered again
until it returns, so a receiver calling back into the application can
never get a proposal funded twice.
*/
package fund
