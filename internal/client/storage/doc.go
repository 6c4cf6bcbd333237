// Package storage is the durable key/value layer under the credential store.
//
// Two backends implement Repository:
//   - SQLiteRepository: a single-file database (modernc.org/sqlite) whose
//     schema is kept by embedded goose migrations. Several client processes
//     may share the same file.
//   - RedisRepository: one Redis hash per profile, for setups where the
//     clients run on different hosts.
//
// Each backend has a matching Watcher that reports writes made by any
// process, which is what lets one client notice that another one logged out.
// Notifications carry no payload; receivers re-read the store.
package storage
