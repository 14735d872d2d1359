package domain

// Quantities is an insertion-ordered apparelId -> quantity map. The order
// fixes the sequence of remote stock calls, which keeps them reproducible.
type Quantities struct {
	ids []string
	qty map[string]int
}

func NewQuantities() *Quantities {
	return &Quantities{qty: make(map[string]int)}
}

// Add accumulates n onto apparelID.
func (q *Quantities) Add(apparelID string, n int) {
	if _, ok := q.qty[apparelID]; !ok {
		q.ids = append(q.ids, apparelID)
	}
	q.qty[apparelID] += n
}

func (q *Quantities) Get(apparelID string) int { return q.qty[apparelID] }

func (q *Quantities) Has(apparelID string) bool {
	_, ok := q.qty[apparelID]
	return ok
}

// IDs returns the apparel ids in first-seen order.
func (q *Quantities) IDs() []string {
	return append([]string(nil), q.ids...)
}

func (q *Quantities) Len() int { return len(q.ids) }

// Adjustment is one remote stock change. A positive Delta reserves stock
// (decrease on the inventory service), a negative Delta releases it.
type Adjustment struct {
	ApparelID string
	Delta     int
}

func (a Adjustment) Reserve() bool { return a.Delta > 0 }

// Quantity is the absolute number of units moved.
func (a Adjustment) Quantity() int {
	if a.Delta < 0 {
		return -a.Delta
	}
	return a.Delta
}

// PlanAdjustments computes the stock changes that turn the reservation held
// by current into the one described by requested:
//
//   - apparel in requested: delta = requested - current (zero deltas dropped)
//   - apparel only in current: release the full current quantity
//
// Requested apparel come first in request order, then dropped apparel in
// their original order.
func PlanAdjustments(current, requested *Quantities) []Adjustment {
	var plan []Adjustment
	for _, id := range requested.ids {
		if delta := requested.Get(id) - current.Get(id); delta != 0 {
			plan = append(plan, Adjustment{ApparelID: id, Delta: delta})
		}
	}
	for _, id := range current.ids {
		if !requested.Has(id) && current.Get(id) != 0 {
			plan = append(plan, Adjustment{ApparelID: id, Delta: -current.Get(id)})
		}
	}
	return plan
}
