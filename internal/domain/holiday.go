package domain

import "time"

type Holiday struct {
	ID     int64     `json:"id"`
	Date   time.Time `json:"date"`
	Name   string    `json:"name"`
	Region string    `json:"region"`
}
