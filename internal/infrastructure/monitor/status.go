package monitor

import "time"

type Status struct {
	Mongo       bool      `json:"mongo"`
	Redis       bool      `json:"redis"`
	LocalStore  bool      `json:"local_store"`
	RepairQueue int       `json:"repair_queue"`
	LastCheck   time.Time `json:"last_check"`
}
