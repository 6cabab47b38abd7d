package entities

import "time"

// Collection names a stored record set
type Collection string

const (
	CollectionListings      Collection = "listings"
	CollectionUsers         Collection = "users"
	CollectionBookings      Collection = "bookings"
	CollectionRentals       Collection = "rentals"
	CollectionPayments      Collection = "payments"
	CollectionNotifications Collection = "notifications"
	CollectionInquiries     Collection = "inquiries"
	CollectionBroadcasts    Collection = "broadcasts"
)

// ChangeOp is the kind of write that produced a change event
type ChangeOp string

const (
	ChangeCreate ChangeOp = "create"
	ChangeUpdate ChangeOp = "update"
	ChangeDelete ChangeOp = "delete"
)

// ChangeEvent signals that a collection changed. It carries no record data;
// subscribers reload the full snapshot.
type ChangeEvent struct {
	Collection Collection `msgpack:"c"`
	Op         ChangeOp   `msgpack:"o"`
	At         time.Time  `msgpack:"t"`
}
