// Package redis holds the Redis-backed adapters: a read-through cache in
// front of the menu catalog, an alternative delivery location store and a
// pub/sub broadcaster that fans location updates out across instances.
package redis
