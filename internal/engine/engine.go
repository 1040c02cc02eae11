package engine

import (
	"sloboda/internal/database"
	"sloboda/internal/engine/actors"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine spawns the forum actors and hands out their PIDs. All forum
// writes flow through these actors; the HTTP layer only ever talks to
// them with RequestFuture.
type Engine struct {
	threadActor  *actor.PID
	commentActor *actor.PID
	roleActor    *actor.PID
}

func NewEngine(system *actor.ActorSystem, db database.Adapter, notifier actors.Notifier) *Engine {
	context := system.Root

	threadPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return actors.NewThreadActor(db)
	}))
	commentPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCommentActor(db, notifier)
	}))
	rolePID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return actors.NewRoleActor(db, notifier)
	}))

	return &Engine{
		threadActor:  threadPID,
		commentActor: commentPID,
		roleActor:    rolePID,
	}
}

// ThreadActor returns the PID of the thread actor.
func (e *Engine) ThreadActor() *actor.PID {
	return e.threadActor
}

// CommentActor returns the PID of the comment actor.
func (e *Engine) CommentActor() *actor.PID {
	return e.commentActor
}

// RoleActor returns the PID of the role actor.
func (e *Engine) RoleActor() *actor.PID {
	return e.roleActor
}
