package model

import "time"

// Seat describes a physical bookable seat on a floor.  The position
// columns locate the seat on the floor map for rendering clients and
// play no part in reservation rules.  The version column implements
// optimistic locking: every write that appends a reservation bumps it,
// so concurrent writers on the same seat cannot both commit.
//
// Fields:
//  ID        – primary key identifier.
//  FloorID   – floor to which this seat belongs.
//  Name      – seat label, unique per floor (e.g. "B-14").
//  Available – when false the seat accepts no new reservations.
//  PosX      – horizontal position on the floor map.
//  PosY      – vertical position on the floor map.
//  Version   – optimistic locking counter for concurrent updates.
//  CreatedAt – timestamp when the record was created.
//  UpdatedAt – timestamp when the record was last updated.
type Seat struct {
    ID        uint64    // seats.id
    FloorID   uint64    // seats.floor_id
    Name      string    // seats.name
    Available bool      // seats.available
    PosX      int32     // seats.pos_x
    PosY      int32     // seats.pos_y
    Version   uint32    // seats.version
    CreatedAt time.Time // seats.created_at
    UpdatedAt time.Time // seats.updated_at
}
