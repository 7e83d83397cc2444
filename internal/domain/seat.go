package domain

// SeatLayout is the (rows x seats_in_row) rectangle of an airplane.
type SeatLayout struct {
	Rows       int
	SeatsInRow int
}

func (l SeatLayout) Capacity() int {
	return l.Rows * l.SeatsInRow
}

// ValidateSeat checks row first, then seat, against the layout bounds.
func ValidateSeat(row, seat int, layout SeatLayout) error {
	if row < 1 || row > layout.Rows {
		return &SeatOutOfRangeError{Field: "row", Limit: "rows", Bound: layout.Rows}
	}
	if seat < 1 || seat > layout.SeatsInRow {
		return &SeatOutOfRangeError{Field: "seat", Limit: "seats_in_row", Bound: layout.SeatsInRow}
	}
	return nil
}

// AvailableSeats is capacity minus booked tickets. A negative result means
// the flight is overbooked and is returned as is.
func AvailableSeats(layout SeatLayout, booked int) int {
	return layout.Capacity() - booked
}
