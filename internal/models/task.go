package models

// Task represents a task row whose coordinates are tagged with a geohash.
type Task struct {
	ID        int     // ID is the unique identifier for the task.
	Latitude  float64 // Latitude of the task location.
	Longitude float64 // Longitude of the task location.
}
