/*
Package app links together all the extensions to construct the peerfund
application: the transaction type, the message paths it understands, the
decorator stack and the persistent store.
*/
package app
