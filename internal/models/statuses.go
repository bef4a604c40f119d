package models

type UserStatus string
type UserRole string
type NotificationType string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleClient         UserRole = "client"
	UserRoleFreelancer     UserRole = "freelancer"
	UserRoleProjectManager UserRole = "project_manager"
	UserRoleAdmin          UserRole = "admin"

	NotificationTypeChat     NotificationType = "chat"
	NotificationTypeProposal NotificationType = "proposal"
	NotificationTypeProject  NotificationType = "project"
	NotificationTypeSystem   NotificationType = "system"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleClient, UserRoleFreelancer, UserRoleProjectManager, UserRoleAdmin:
		return true
	default:
		return false
	}
}

func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusSuspended
}

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeChat, NotificationTypeProposal, NotificationTypeProject, NotificationTypeSystem:
		return true
	default:
		return false
	}
}
