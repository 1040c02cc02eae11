package actors

import (
	"encoding/json"
	"log"
	"time"

	stdctx "context"

	"sloboda/internal/models"
	"sloboda/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for role operations
type (
	PromoteUserMsg struct {
		UserID      uuid.UUID
		RequesterID uuid.UUID
	}

	DemoteUserMsg struct {
		UserID      uuid.UUID
		RequesterID uuid.UUID
	}

	GetRoleMsg struct {
		UserID uuid.UUID
	}
)

// RoleActor serializes tier changes. Promotion and demotion move exactly
// one rung on the ladder; concurrent changes for the same user cannot
// skip tiers because this actor processes them one at a time.
type RoleActor struct {
	store    RoleStore
	notifier Notifier
}

func NewRoleActor(store RoleStore, notifier Notifier) actor.Actor {
	return &RoleActor{store: store, notifier: notifier}
}

func (a *RoleActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("RoleActor started")
	case *actor.Stopping:
		log.Printf("RoleActor stopping")
	case *PromoteUserMsg:
		a.handleStep(context, msg.UserID, msg.RequesterID, +1)
	case *DemoteUserMsg:
		a.handleStep(context, msg.UserID, msg.RequesterID, -1)
	case *GetRoleMsg:
		a.handleGet(context, msg)
	}
}

func (a *RoleActor) handleStep(context actor.Context, userID, requesterID uuid.UUID, direction int) {
	ctx := stdctx.Background()

	requester, err := a.store.GetUserRole(ctx, requesterID)
	if err != nil {
		context.Respond(err)
		return
	}
	if requester.Level() < models.ModeratorLevel {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "moderator role required", nil))
		return
	}

	target, err := a.store.GetUserRole(ctx, userID)
	if err != nil {
		context.Respond(err)
		return
	}
	// A moderator cannot change the tier of a peer or superior.
	if userID != requesterID && target.Level() >= requester.Level() {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "cannot change the role of a user at or above your tier", nil))
		return
	}

	newRole, ok := models.RoleForLevel(target.Level() + direction)
	if !ok {
		context.Respond(utils.NewAppError(utils.ErrRoleAtEdge, "user is already at the end of the role ladder", nil))
		return
	}

	if err := a.store.SetUserRole(ctx, userID, newRole); err != nil {
		context.Respond(err)
		return
	}
	log.Printf("RoleActor: user %s moved from %s to %s by %s", userID, target.Role, newRole, requesterID)

	a.notifyRoleChange(ctx, userID, target.Role, newRole)

	target.Role = newRole
	target.UpdatedAt = time.Now()
	context.Respond(target)
}

func (a *RoleActor) notifyRoleChange(ctx stdctx.Context, userID uuid.UUID, oldRole, newRole models.Role) {
	payload, _ := json.Marshal(map[string]string{
		"from": string(oldRole),
		"to":   string(newRole),
	})
	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      models.NotifyRoleChange,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	if err := a.store.SaveNotification(ctx, n); err != nil {
		log.Printf("RoleActor: failed to save role notification: %v", err)
		return
	}
	if a.notifier != nil {
		a.notifier.Push(userID, n)
	}
}

func (a *RoleActor) handleGet(context actor.Context, msg *GetRoleMsg) {
	role, err := a.store.GetUserRole(stdctx.Background(), msg.UserID)
	if err != nil {
		context.Respond(err)
		return
	}
	context.Respond(role)
}
