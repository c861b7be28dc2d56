package draftstate

// OperatorTurn answers "is it my turn" with an explicit unknown state: when
// the operator's seat cannot be resolved the system must say so rather than
// guess a team.
type OperatorTurn string

const (
	TurnYes     OperatorTurn = "true"
	TurnNo      OperatorTurn = "false"
	TurnUnknown OperatorTurn = "unknown"
)

// Order is the authoritative turn/ownership model for one draft, built from
// the provider's three partially-redundant "who" encodings.
type Order struct {
	TeamCount int
	Rounds    int
	Snake     bool

	teamForSlot map[int]int
	slotForUser map[string]int

	OperatorTeamID   int
	OperatorResolved bool
}

// ResolveOrder builds an Order from draft info. If operatorUserID is not in
// the user/slot assignment the operator stays unresolved; it is never
// defaulted to slot 1.
func ResolveOrder(info DraftInfo, operatorUserID string) Order {
	o := Order{
		TeamCount:   info.TeamCount,
		Rounds:      info.Rounds,
		Snake:       info.IsSnake(),
		teamForSlot: make(map[int]int, len(info.SlotTeams)),
		slotForUser: make(map[string]int, len(info.UserSlots)),
	}
	for _, st := range info.SlotTeams {
		if st.Slot > 0 && st.TeamID > 0 {
			o.teamForSlot[st.Slot] = st.TeamID
		}
	}
	for _, us := range info.UserSlots {
		if us.UserID != "" && us.Slot > 0 {
			o.slotForUser[us.UserID] = us.Slot
		}
	}
	if slot, ok := o.slotForUser[operatorUserID]; ok && operatorUserID != "" {
		o.OperatorTeamID = o.TeamForSlot(slot)
		o.OperatorResolved = true
	}
	return o
}

// TeamForSlot maps a draft slot to its team id. A slot with no roster entry
// falls back to the slot number itself so the system still produces a usable
// identifier.
func (o Order) TeamForSlot(slot int) int {
	if teamID, ok := o.teamForSlot[slot]; ok {
		return teamID
	}
	return slot
}

// Turn describes the next pick on the clock.
type Turn struct {
	Complete   bool `json:"complete"`
	PickNumber int  `json:"pick_number,omitempty"`
	Round      int  `json:"round,omitempty"`
	Slot       int  `json:"slot,omitempty"`
	TeamID     int  `json:"team_id,omitempty"`
}

// SlotForPick derives the seat that owns a global pick number, applying
// snake reversal on even rounds. Zero when the draft shape is unknown.
func (o Order) SlotForPick(pickNo int) int {
	if o.TeamCount <= 0 || pickNo < 1 {
		return 0
	}
	idx := (pickNo - 1) % o.TeamCount
	round := (pickNo-1)/o.TeamCount + 1
	if o.Snake && round%2 == 0 {
		return o.TeamCount - idx
	}
	return idx + 1
}

// NextTurn computes the turn after totalPicks completed picks. Pure function
// of the draft shape; snake drafts reverse direction every even round.
func (o Order) NextTurn(totalPicks int) Turn {
	if o.TeamCount <= 0 || totalPicks >= o.TeamCount*o.Rounds {
		return Turn{Complete: true}
	}
	pickNo := totalPicks + 1
	slot := o.SlotForPick(pickNo)
	return Turn{
		PickNumber: pickNo,
		Round:      (pickNo-1)/o.TeamCount + 1,
		Slot:       slot,
		TeamID:     o.TeamForSlot(slot),
	}
}

// IsOperatorTurn reports whether the next pick belongs to the operator, or
// "unknown" when the operator's seat never resolved.
func (o Order) IsOperatorTurn(totalPicks int) OperatorTurn {
	if !o.OperatorResolved {
		return TurnUnknown
	}
	turn := o.NextTurn(totalPicks)
	if turn.Complete {
		return TurnNo
	}
	if turn.TeamID == o.OperatorTeamID {
		return TurnYes
	}
	return TurnNo
}
