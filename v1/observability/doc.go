// Package observability defines the hook through which database executors
// report finished operations.
//
// An Observer is attached to an executor with WithObserver or injected by the
// database FX module. The metrics package ships a Prometheus backed Observer;
// tests usually record the OperationContext values they receive.
package observability
