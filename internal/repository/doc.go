// Package repository contains data access implementations for the Circuit Lab API.
//
// Repository interfaces are defined at the service layer (consumer-defined
// interfaces). The memory subpackage holds the only implementation: process
// local stores that reset on restart.
//
// # Thread Safety
//
// Every store guards its collection with a mutex. Lookup-then-write
// sequences (id allocation, email uniqueness, progress upsert) run under a
// single write lock, so concurrent requests can neither allocate the same id
// nor create two progress records for one (user, experiment) pair.
package repository
