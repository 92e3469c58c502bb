package domain

import (
	"fmt"
	"slices"
)

type Stage string

const (
	StageDiscovery   Stage = "discovery"
	StageEvaluation  Stage = "evaluation"
	StageProposal    Stage = "proposal"
	StageProcurement Stage = "procurement"
	StageClosedWon   Stage = "closed-won"
	StageClosedLost  Stage = "closed-lost"
)

// IsClosed reports whether the stage is terminal. Closed deals are excluded
// from open-pipeline aggregates and from notification linking.
func (s Stage) IsClosed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

type SignalType string

const (
	SignalHiring     SignalType = "hiring"
	SignalFunding    SignalType = "funding"
	SignalTooling    SignalType = "tooling"
	SignalEngagement SignalType = "engagement"
)

type ActivityType string

const (
	ActivityCall    ActivityType = "call"
	ActivityEmail   ActivityType = "email"
	ActivityMeeting ActivityType = "meeting"
	ActivityNote    ActivityType = "note"
)

type TaskOwner string

const (
	OwnerRep     TaskOwner = "rep"
	OwnerManager TaskOwner = "manager"
	OwnerSystem  TaskOwner = "system"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for sorting and filtering; higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskDone       TaskStatus = "done"
)

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelPhone    Channel = "phone"
	ChannelLinkedIn Channel = "linkedin"
	ChannelMeeting  Channel = "meeting"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type NotificationStatus string

const (
	NotificationUnread       NotificationStatus = "unread"
	NotificationAcknowledged NotificationStatus = "acknowledged"
)

// EnumCodec is the single bidirectional mapping between an enum's API form
// (lowercase, as exposed to callers) and its stored form (UPPER_SNAKE).
type EnumCodec[T ~string] struct {
	name   string
	order  []T
	toDB   map[T]string
	fromDB map[string]T
}

type enumPair[T ~string] struct {
	value  T
	stored string
}

func newEnumCodec[T ~string](name string, pairs ...enumPair[T]) EnumCodec[T] {
	c := EnumCodec[T]{
		name:   name,
		order:  make([]T, 0, len(pairs)),
		toDB:   make(map[T]string, len(pairs)),
		fromDB: make(map[string]T, len(pairs)),
	}
	for _, p := range pairs {
		c.order = append(c.order, p.value)
		c.toDB[p.value] = p.stored
		c.fromDB[p.stored] = p.value
	}
	return c
}

// ToDB returns the stored form of v.
func (c EnumCodec[T]) ToDB(v T) (string, error) {
	s, ok := c.toDB[v]
	if !ok {
		return "", fmt.Errorf("%w: unknown %s %q", ErrValidation, c.name, string(v))
	}
	return s, nil
}

// FromDB returns the API value for a stored string.
func (c EnumCodec[T]) FromDB(s string) (T, error) {
	v, ok := c.fromDB[s]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown stored %s %q", c.name, s)
	}
	return v, nil
}

// Parse validates an API-form string.
func (c EnumCodec[T]) Parse(s string) (T, error) {
	v := T(s)
	if _, ok := c.toDB[v]; !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s must be one of %v", ErrValidation, c.name, c.order)
	}
	return v, nil
}

// Values returns every API value in declaration order.
func (c EnumCodec[T]) Values() []T {
	return slices.Clone(c.order)
}

var (
	StageCodec = newEnumCodec("stage",
		enumPair[Stage]{StageDiscovery, "DISCOVERY"},
		enumPair[Stage]{StageEvaluation, "EVALUATION"},
		enumPair[Stage]{StageProposal, "PROPOSAL"},
		enumPair[Stage]{StageProcurement, "PROCUREMENT"},
		enumPair[Stage]{StageClosedWon, "CLOSED_WON"},
		enumPair[Stage]{StageClosedLost, "CLOSED_LOST"},
	)
	SignalTypeCodec = newEnumCodec("signal type",
		enumPair[SignalType]{SignalHiring, "HIRING"},
		enumPair[SignalType]{SignalFunding, "FUNDING"},
		enumPair[SignalType]{SignalTooling, "TOOLING"},
		enumPair[SignalType]{SignalEngagement, "ENGAGEMENT"},
	)
	ActivityTypeCodec = newEnumCodec("activity type",
		enumPair[ActivityType]{ActivityCall, "CALL"},
		enumPair[ActivityType]{ActivityEmail, "EMAIL"},
		enumPair[ActivityType]{ActivityMeeting, "MEETING"},
		enumPair[ActivityType]{ActivityNote, "NOTE"},
	)
	TaskOwnerCodec = newEnumCodec("task owner",
		enumPair[TaskOwner]{OwnerRep, "REP"},
		enumPair[TaskOwner]{OwnerManager, "MANAGER"},
		enumPair[TaskOwner]{OwnerSystem, "SYSTEM"},
	)
	PriorityCodec = newEnumCodec("priority",
		enumPair[Priority]{PriorityHigh, "HIGH"},
		enumPair[Priority]{PriorityMedium, "MEDIUM"},
		enumPair[Priority]{PriorityLow, "LOW"},
	)
	TaskStatusCodec = newEnumCodec("task status",
		enumPair[TaskStatus]{TaskTodo, "TODO"},
		enumPair[TaskStatus]{TaskInProgress, "IN_PROGRESS"},
		enumPair[TaskStatus]{TaskDone, "DONE"},
	)
	ChannelCodec = newEnumCodec("channel",
		enumPair[Channel]{ChannelEmail, "EMAIL"},
		enumPair[Channel]{ChannelPhone, "PHONE"},
		enumPair[Channel]{ChannelLinkedIn, "LINKEDIN"},
		enumPair[Channel]{ChannelMeeting, "MEETING"},
	)
	ApprovalStatusCodec = newEnumCodec("approval status",
		enumPair[ApprovalStatus]{ApprovalPending, "PENDING"},
		enumPair[ApprovalStatus]{ApprovalApproved, "APPROVED"},
		enumPair[ApprovalStatus]{ApprovalRejected, "REJECTED"},
	)
	NotificationStatusCodec = newEnumCodec("notification status",
		enumPair[NotificationStatus]{NotificationUnread, "UNREAD"},
		enumPair[NotificationStatus]{NotificationAcknowledged, "ACKNOWLEDGED"},
	)
)
