package forum

import "sloboda/internal/models"

// CapabilitySet lists what a role level may do. Capabilities are always
// derived from the level here and never persisted alongside the role row.
type CapabilitySet struct {
	CanPost          bool `json:"canPost"`
	CanComment       bool `json:"canComment"`
	CanCreateThreads bool `json:"canCreateThreads"`
	CanModerate      bool `json:"canModerate"`
}

// CapabilitiesFor maps a role level to its capabilities. Unknown levels
// (negative) get nothing. Thread creation starts at member; moderation at
// moderator.
func CapabilitiesFor(level int) CapabilitySet {
	if level < 0 {
		return CapabilitySet{}
	}
	return CapabilitySet{
		CanPost:          true,
		CanComment:       true,
		CanCreateThreads: level >= models.RoleMember.Level(),
		CanModerate:      level >= models.ModeratorLevel,
	}
}
