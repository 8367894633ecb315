package model

import "time"

// Floor represents a single level of a building.  Floors group the
// seats that users can browse and reserve.  Each floor has a unique
// name within its building.
//
// Fields:
//  ID          – primary key identifier.
//  BuildingID  – building to which this floor belongs.
//  Name        – unique floor name per building (e.g. "3rd Floor").
//  Description – optional description of the floor.
//  IsActive    – whether the floor is shown to users.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Floor struct {
    ID          uint64    // floors.id
    BuildingID  uint64    // floors.building_id
    Name        string    // floors.name
    Description *string   // floors.description (nullable)
    IsActive    bool      // floors.is_active
    CreatedAt   time.Time // floors.created_at
    UpdatedAt   time.Time // floors.updated_at
}
