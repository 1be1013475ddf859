package hydrogen

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindPriceUpdate Kind = "price_update"
	KindCascade     Kind = "cascade"
)

// Signal is one price notification addressed to a site.
type Signal struct {
	ID   uuid.UUID `json:"id"`
	Kind Kind      `json:"kind"`
	Site string    `json:"site"`

	Price         float64 `json:"price"`
	PreviousPrice float64 `json:"previous_price"`
	ChangePercent float64 `json:"change_percent"`
	Cascade       bool    `json:"cascade"`

	EmittedAt time.Time `json:"emitted_at"`
}

func newSignal(kind Kind, site string, price, prev, changePct float64, at time.Time) Signal {
	return Signal{
		ID:            uuid.New(),
		Kind:          kind,
		Site:          site,
		Price:         price,
		PreviousPrice: prev,
		ChangePercent: changePct,
		Cascade:       kind == KindCascade,
		EmittedAt:     at.UTC(),
	}
}
