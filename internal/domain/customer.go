package domain

import "time"

type Customer struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	NIC         string    `json:"nic"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	NICFrontURL string    `json:"nic_front_url,omitempty"`
	NICBackURL  string    `json:"nic_back_url,omitempty"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}
