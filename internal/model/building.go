package model

import "time"

// Building represents an office building that contains bookable
// floors.  Buildings are managed by administrators.  This struct
// corresponds to a row in the `buildings` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique building name.
//  Address   – postal address shown to users (optional).
//  CreatedAt – timestamp when the building was created.
//  UpdatedAt – timestamp of last update.
type Building struct {
    ID        uint64    // buildings.id
    Name      string    // buildings.name
    Address   *string   // buildings.address (nullable)
    CreatedAt time.Time // buildings.created_at
    UpdatedAt time.Time // buildings.updated_at
}
