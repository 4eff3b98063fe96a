// Package ringbuffer implements a bounded, lock-free, multi-producer/
// multi-consumer in-process channel: a fixed-capacity FIFO queue of typed
// values safe under concurrent Send/Recv from any number of goroutines.
//
// The core is a variant of Dmitry Vyukov's bounded MPMC queue
// (https://www.1024cores.net/home/lock-free-algorithms/queues/bounded-mpmc-queue),
// extended with blocking Send/Recv, an explicit Close that unblocks every
// waiter, and FIFO-ordered wakeup for parked callers. See position.go for
// the cursor encoding, backoff.go for the spin/yield/park pacing, parkset.go
// for the waiter queues, slot.go for the backing array, and channel.go for
// the producer/consumer state machine that ties them together.
package ringbuffer
