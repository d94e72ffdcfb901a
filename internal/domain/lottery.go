package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// AnimationMode selects how display screens reveal a draw
type AnimationMode string

const (
	AnimationShuffle    AnimationMode = "shuffle"
	AnimationWaterfall  AnimationMode = "waterfall"
	AnimationTournament AnimationMode = "tournament"
	AnimationMachine    AnimationMode = "machine"
)

// AnimationModes lists every supported mode in display order
var AnimationModes = []AnimationMode{
	AnimationShuffle,
	AnimationWaterfall,
	AnimationTournament,
	AnimationMachine,
}

// Valid reports whether m is a supported animation mode
func (m AnimationMode) Valid() bool {
	for _, mode := range AnimationModes {
		if m == mode {
			return true
		}
	}
	return false
}

// LotteryState is the singleton control record shared by admins and display screens.
// IsDrawing doubles as the draw lock: while set no new draw is accepted until the
// in-flight draw completes or the record is reset.
type LotteryState struct {
	IsActive              bool          `json:"isActive"`
	IsDrawing             bool          `json:"isDrawing"`
	CurrentDrawID         *uuid.UUID    `json:"currentDrawId"`
	MaxPhotosForWeighting int           `json:"maxPhotosForWeighting"`
	WinnersPerDraw        int           `json:"winnersPerDraw"`
	AnimationMode         AnimationMode `json:"animationMode"`
	NotifyWinnerEnabled   bool          `json:"notifyWinnerEnabled"`
	Version               int64         `json:"version"`
	UpdatedAt             time.Time     `json:"updatedAt"`
}

// DefaultLotteryState is the state of a freshly provisioned or reset lottery
func DefaultLotteryState() LotteryState {
	return LotteryState{
		IsActive:              false,
		IsDrawing:             false,
		CurrentDrawID:         nil,
		MaxPhotosForWeighting: DefaultMaxPhotosForWeighting,
		WinnersPerDraw:        DefaultWinnersPerDraw,
		AnimationMode:         AnimationShuffle,
		NotifyWinnerEnabled:   false,
	}
}

// EqualProbability reports whether every eligible participant carries weight 1
func (s LotteryState) EqualProbability() bool {
	return s.MaxPhotosForWeighting == 0
}

// HistoryRecord is one winner of one draw. Records are append-only and removed
// only by an explicit purge.
type HistoryRecord struct {
	ID                uuid.UUID `json:"id"`
	WinnerUserID      string    `json:"winnerUserId"`
	WinnerDisplayName string    `json:"winnerDisplayName"`
	WinnerAvatarURL   string    `json:"winnerAvatarUrl,omitempty"`
	PhotoCountAtDraw  int       `json:"photoCountAtDraw"`
	DrawTime          time.Time `json:"drawTime"`
	AdminID           string    `json:"adminId"`
	ParticipantsCount int       `json:"participantsCount"`
	WinnerPhotoID     string    `json:"winnerPhotoId,omitempty"`
	WinnerPhotoURL    string    `json:"winnerPhotoUrl,omitempty"`
}

// EligibleParticipant is a user with at least one public photo
type EligibleParticipant struct {
	UserID           string `json:"userId"`
	DisplayName      string `json:"displayName"`
	AvatarURL        string `json:"avatarUrl,omitempty"`
	PublicPhotoCount int    `json:"publicPhotoCount"`
}

// Weight returns the selection weight under the given cap. A cap of zero means
// equal probability.
func (p EligibleParticipant) Weight(maxPhotos int) int {
	if maxPhotos == 0 {
		return 1
	}
	if p.PublicPhotoCount < maxPhotos {
		return p.PublicPhotoCount
	}
	return maxPhotos
}

// Photo is an uploaded guest photo; only public photos are eligible
type Photo struct {
	ID          string    `json:"id"`
	ImageURL    string    `json:"imageUrl"`
	OwnerUserID string    `json:"ownerUserId"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DrawResult is returned by an accepted draw
type DrawResult struct {
	DrawID            uuid.UUID       `json:"drawId"`
	Winners           []HistoryRecord `json:"winners"`
	ParticipantsCount int             `json:"participantsCount"`
}

// ControlField names a single mutable LotteryState field
type ControlField string

const (
	ControlIsActive              ControlField = "isActive"
	ControlMaxPhotosForWeighting ControlField = "maxPhotosForWeighting"
	ControlWinnersPerDraw        ControlField = "winnersPerDraw"
	ControlAnimationMode         ControlField = "animationMode"
	ControlNotifyWinnerEnabled   ControlField = "notifyWinnerEnabled"
)

// ControlUpdate is a partial update of LotteryState. Nil fields are left untouched.
type ControlUpdate struct {
	IsActive              *bool
	MaxPhotosForWeighting *int
	WinnersPerDraw        *int
	AnimationMode         *AnimationMode
	NotifyWinnerEnabled   *bool
}

// Empty reports whether the update changes nothing
func (u ControlUpdate) Empty() bool {
	return u.IsActive == nil && u.MaxPhotosForWeighting == nil && u.WinnersPerDraw == nil &&
		u.AnimationMode == nil && u.NotifyWinnerEnabled == nil
}

// Apply returns a copy of s with the update applied
func (u ControlUpdate) Apply(s LotteryState) LotteryState {
	if u.IsActive != nil {
		s.IsActive = *u.IsActive
	}
	if u.MaxPhotosForWeighting != nil {
		s.MaxPhotosForWeighting = *u.MaxPhotosForWeighting
	}
	if u.WinnersPerDraw != nil {
		s.WinnersPerDraw = *u.WinnersPerDraw
	}
	if u.AnimationMode != nil {
		s.AnimationMode = *u.AnimationMode
	}
	if u.NotifyWinnerEnabled != nil {
		s.NotifyWinnerEnabled = *u.NotifyWinnerEnabled
	}
	return s
}

// Point is a 2D coordinate. Track points are stored as percentages of the
// design-space canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TrackConfig describes the machine-mode flight path from the chamber exit to the podium
type TrackConfig struct {
	StartPoint    Point     `json:"startPoint"`
	EndPoint      Point     `json:"endPoint"`
	Nodes         []Point   `json:"nodes"`
	TokenDiameter float64   `json:"tokenDiameter"`
	ChamberWidth  float64   `json:"chamberWidth"`
	ChamberHeight float64   `json:"chamberHeight"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ControlPoints returns start, nodes and end in path order
func (t TrackConfig) ControlPoints() []Point {
	pts := make([]Point, 0, len(t.Nodes)+2)
	pts = append(pts, t.StartPoint)
	pts = append(pts, t.Nodes...)
	pts = append(pts, t.EndPoint)
	return pts
}

// DefaultTrackConfig is used when no track has been saved
func DefaultTrackConfig() TrackConfig {
	return TrackConfig{
		StartPoint: Point{X: 50, Y: 62},
		EndPoint:   Point{X: 50, Y: 90},
		Nodes: []Point{
			{X: 78, Y: 66},
			{X: 85, Y: 80},
			{X: 65, Y: 88},
		},
		TokenDiameter: DefaultTokenDiameter,
		ChamberWidth:  DefaultChamberWidth,
		ChamberHeight: DefaultChamberHeight,
	}
}

// ExclusionSet holds the users who already won in the current session.
// It is always rebuilt from history, never mutated on its own.
type ExclusionSet map[string]struct{}

// NewExclusionSet derives the set from history records
func NewExclusionSet(records []HistoryRecord) ExclusionSet {
	set := make(ExclusionSet, len(records))
	for _, r := range records {
		set[r.WinnerUserID] = struct{}{}
	}
	return set
}

// NewExclusionSetFromIDs builds the set from winner user ids
func NewExclusionSetFromIDs(ids []string) ExclusionSet {
	set := make(ExclusionSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether userID already won
func (e ExclusionSet) Contains(userID string) bool {
	_, ok := e[userID]
	return ok
}

// IDs returns the excluded user ids sorted
func (e ExclusionSet) IDs() []string {
	ids := make([]string, 0, len(e))
	for id := range e {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
