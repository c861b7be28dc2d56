package draftstate

// Provider payload shapes. Every optional field here has been observed
// null, empty, or absent in the wild, so decoding must not depend on any of
// them being present.

type ProviderPayload struct {
	Info  DraftInfo      `json:"draft_info"`
	Picks []ProviderPick `json:"picks"`
}

type DraftInfo struct {
	TeamCount int    `json:"team_count"`
	Rounds    int    `json:"rounds"`
	DraftType string `json:"draft_type"` // "snake" or "linear"
	// UserSlots assigns each user to a draft slot. The operator's user id is
	// sometimes missing entirely (automated drafters fill the other seats).
	UserSlots []UserSlot `json:"user_slots"`
	// SlotTeams maps draft slots to roster/team ids. Slots may be absent.
	SlotTeams []SlotTeam `json:"slot_teams"`
}

type UserSlot struct {
	UserID string `json:"user_id"`
	Slot   int    `json:"draft_slot"`
}

type SlotTeam struct {
	Slot   int `json:"draft_slot"`
	TeamID int `json:"team_id"`
}

// ProviderPick is one raw pick record. PickedBy is the least reliable field
// (frequently blank) and is only ever used as a corroborating signal.
type ProviderPick struct {
	Round     int    `json:"round"`
	PickNo    int    `json:"pick_no"`
	DraftSlot int    `json:"draft_slot"`
	PlayerID  int    `json:"player_id,omitempty"`
	PickedBy  string `json:"picked_by,omitempty"`
}

// IsSnake reports whether the payload describes a snake draft. Anything
// other than an explicit "linear" is treated as snake, the common format.
func (i DraftInfo) IsSnake() bool {
	return i.DraftType != "linear"
}
