package orders

import "fmt"

type Status string

const (
	StatusDiproses   Status = "Diproses"
	StatusDikirim    Status = "Dikirim"
	StatusSelesai    Status = "Selesai"
	StatusDibatalkan Status = "Dibatalkan"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDiproses, StatusDikirim, StatusSelesai, StatusDibatalkan:
		return true
	}
	return false
}

// Forward-only fulfillment: batal hanya bisa sebelum selesai.
var validNext = map[Status]map[Status]bool{
	StatusDiproses:   {StatusDikirim: true, StatusDibatalkan: true},
	StatusDikirim:    {StatusSelesai: true, StatusDibatalkan: true},
	StatusSelesai:    {},
	StatusDibatalkan: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// ErrInvalidTransition rejects status moves outside the transition table.
type ErrInvalidTransition struct {
	From, To Status
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}
