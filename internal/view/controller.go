// Package view lets an operator watch and edit another player's equipment,
// live when the player is connected and against stored data otherwise.
//
// Every Controller method must run on the foreground loop.
package view

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/InventoryRestore_Go/internal/codec"
	"github.com/osse101/InventoryRestore_Go/internal/domain"
	"github.com/osse101/InventoryRestore_Go/internal/logger"
	"github.com/osse101/InventoryRestore_Go/internal/metrics"
)

var (
	ErrTargetNotFound = errors.New(ErrMsgTargetNotFound)
	ErrNoSession      = errors.New(ErrMsgNoSession)
	ErrReadOnly       = errors.New(ErrMsgReadOnly)
)

// offlineSources are tried in order after the pending inventory.
var offlineSources = []domain.RecordKind{domain.KindDisconnection, domain.KindConnection}

// Config holds the controller settings.
type Config struct {
	Layout       Layout
	PollInterval time.Duration
}

// Dependencies are the collaborators of the controller.
type Dependencies struct {
	Loop     Loop
	Store    Store
	Pending  PendingStore
	Players  Directory
	Screen   Screen
	Messages Messenger
}

// Controller owns the view sessions, at most one per viewer.
type Controller struct {
	layout       Layout
	pollInterval time.Duration

	loop     Loop
	store    Store
	pending  PendingStore
	players  Directory
	screen   Screen
	messages Messenger

	sessions map[uuid.UUID]*Session
}

// NewController validates the layout and creates a controller.
func NewController(cfg Config, deps Dependencies) (*Controller, error) {
	if err := cfg.Layout.Validate(); err != nil {
		return nil, err
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	return &Controller{
		layout:       cfg.Layout,
		pollInterval: cfg.PollInterval,
		loop:         deps.Loop,
		store:        deps.Store,
		pending:      deps.Pending,
		players:      deps.Players,
		screen:       deps.Screen,
		messages:     deps.Messages,
		sessions:     make(map[uuid.UUID]*Session),
	}, nil
}

// Session returns the open session of viewer.
func (c *Controller) Session(viewer uuid.UUID) (*Session, bool) {
	s, ok := c.sessions[viewer]
	return s, ok
}

// ActiveSessions returns the number of open sessions.
func (c *Controller) ActiveSessions() int {
	return len(c.sessions)
}

// Open shows targetName's equipment to viewer, ending any session the viewer already has.
//
// A connected target is mirrored live. Otherwise the newest pending inventory is shown,
// then the latest disconnection record, then the latest connection record.
// The viewer is told when nothing is found or the stored data cannot be decoded.
func (c *Controller) Open(ctx context.Context, viewer uuid.UUID, targetName string, canModify bool) error {
	ctx = logger.WithActor(ctx, viewer.String())
	log := logger.FromContext(ctx)

	if prior, ok := c.sessions[viewer]; ok {
		c.end(ctx, prior)
	}

	if target, ok := c.players.PlayerByName(targetName); ok {
		snapshot := codec.Capture(target.Equipment)
		session := c.newSession(viewer, target.ID, target.Name, ModeOnline, canModify)
		c.render(session, snapshot)
		c.show(session)
		session.poll = c.loop.Every(c.pollInterval, func() { c.poll(session) })
		log.Info(LogMsgSessionOpened, "target", target.Name, "mode", session.Mode.String(), "editable", canModify)
		return nil
	}

	source, err := c.findOffline(ctx, targetName)
	if errors.Is(err, ErrTargetNotFound) {
		c.messages.Send(viewer, MsgKeyNotFound, map[string]string{ArgPlayer: targetName})
		return err
	}
	if err != nil {
		return err
	}

	snapshot, err := codec.Deserialize(source.Inventory)
	if err != nil {
		log.Warn(LogMsgInvalidInventory, "target", targetName, "error", err)
		c.messages.Send(viewer, MsgKeyInvalid, map[string]string{ArgPlayer: targetName})
		return err
	}

	session := c.newSession(viewer, source.ActorID, source.Nickname, ModeOffline, canModify)
	session.buffered = snapshot
	c.render(session, snapshot)
	c.show(session)
	log.Info(LogMsgSessionOpened, "target", source.Nickname, "mode", session.Mode.String(), "editable", canModify)
	return nil
}

// Interact is called after the viewer changed the display. Edits are pushed on the next loop turn.
func (c *Controller) Interact(viewer uuid.UUID) error {
	session, ok := c.sessions[viewer]
	if !ok {
		return ErrNoSession
	}
	if !session.CanModify {
		return ErrReadOnly
	}
	session.skipRefresh = true
	if !c.loop.Submit(func() { c.push(session) }) {
		logger.Warn(LogMsgPushSubmitFailed, "viewer", viewer)
	}
	return nil
}

// Close ends the viewer's session. It is a no-op without one.
func (c *Controller) Close(viewer uuid.UUID) {
	if session, ok := c.sessions[viewer]; ok {
		c.end(context.Background(), session)
	}
}

// ViewerQuit ends the session of a viewer who disconnected.
func (c *Controller) ViewerQuit(viewer uuid.UUID) {
	c.Close(viewer)
}

// CloseAll ends every session, used at shutdown.
func (c *Controller) CloseAll() {
	for _, session := range c.sessions {
		c.end(context.Background(), session)
	}
}

func (c *Controller) newSession(viewer, targetID uuid.UUID, targetName string, mode Mode, canModify bool) *Session {
	session := &Session{
		Viewer:     viewer,
		TargetID:   targetID,
		TargetName: targetName,
		Mode:       mode,
		CanModify:  canModify,
		display:    NewDisplay(c.layout.Size),
	}
	c.sessions[viewer] = session
	metrics.ViewSessions.Inc()
	return session
}

func (c *Controller) show(session *Session) {
	title := c.messages.Format(MsgKeyTitle, map[string]string{ArgPlayer: session.TargetName})
	c.screen.Show(session.Viewer, title, session.display)
}

// findOffline returns the stored inventory an offline session starts from.
func (c *Controller) findOffline(ctx context.Context, nickname string) (*domain.PendingInventory, error) {
	pending, err := c.pending.FindByNickname(ctx, nickname)
	if err == nil {
		return pending, nil
	}
	if !errors.Is(err, domain.ErrPendingNotFound) {
		return nil, err
	}

	for _, kind := range offlineSources {
		record, err := c.store.FindLatestByNickname(ctx, kind, nickname)
		if errors.Is(err, domain.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &domain.PendingInventory{ActorID: record.ActorID, Nickname: record.Nickname, Inventory: record.Inventory}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, nickname)
}

// poll refreshes an online session from the live equipment.
func (c *Controller) poll(session *Session) {
	if c.sessions[session.Viewer] != session {
		session.poll.Cancel()
		return
	}
	if _, ok := c.players.Player(session.Viewer); !ok {
		c.end(context.Background(), session)
		return
	}
	if c.screen.Showing(session.Viewer) != session.display {
		return
	}
	target, ok := c.onlineTarget(session)
	if !ok {
		c.targetOffline(session)
		return
	}
	if session.skipRefresh {
		session.skipRefresh = false
		return
	}
	c.render(session, codec.Capture(target.Equipment))
}

// push applies the display to the target: live equipment when online, the edit buffer otherwise.
func (c *Controller) push(session *Session) {
	if c.sessions[session.Viewer] != session {
		return
	}
	edited := c.layout.Capture(session.display, session.baseline)

	if session.Mode == ModeOffline {
		session.buffered = edited
		session.baseline = edited
		session.dirty = true
		metrics.ViewPushes.WithLabelValues(metrics.ModeOffline).Inc()
		return
	}

	target, ok := c.onlineTarget(session)
	if !ok {
		c.targetOffline(session)
		return
	}
	mergeEdits(target.Equipment, session.baseline, edited)
	session.baseline = edited
	metrics.ViewPushes.WithLabelValues(metrics.ModeOnline).Inc()
}

// mergeEdits writes the main storage slots the viewer changed since baseline, leaving
// every other slot as the target now has it. Armor and offhand are taken from edited.
func mergeEdits(target *domain.Equipment, baseline, edited domain.Snapshot) {
	for i := range target.Storage {
		after := edited.ContentAt(i)
		if baseline.ContentAt(i).Equal(after) {
			continue
		}
		target.Storage[i] = after
	}
	for i := range target.Armor {
		target.Armor[i] = edited.ArmorAt(i)
	}
	target.Offhand = edited.Offhand()
}

func (c *Controller) onlineTarget(session *Session) (*domain.Player, bool) {
	if target, ok := c.players.Player(session.TargetID); ok {
		return target, true
	}
	return c.players.PlayerByName(session.TargetName)
}

func (c *Controller) targetOffline(session *Session) {
	logger.Info(LogMsgTargetOffline, "viewer", session.Viewer, "target", session.TargetName)
	c.messages.Send(session.Viewer, MsgKeyTargetOffline, map[string]string{ArgPlayer: session.TargetName})
	c.screen.Close(session.Viewer)
	c.end(context.Background(), session)
}

func (c *Controller) render(session *Session, snapshot domain.Snapshot) {
	c.layout.Render(session.display, snapshot)
	session.baseline = c.layout.Capture(session.display, snapshot)
}

// end removes the session and, for an edited offline session, queues the pending save.
func (c *Controller) end(ctx context.Context, session *Session) {
	if c.sessions[session.Viewer] == session {
		delete(c.sessions, session.Viewer)
	}
	if session.ended {
		return
	}
	session.ended = true
	if session.poll != nil {
		session.poll.Cancel()
	}
	metrics.ViewSessions.Dec()
	logger.FromContext(ctx).Info(LogMsgSessionEnded, "viewer", session.Viewer, "target", session.TargetName)

	if session.Mode != ModeOffline || !session.CanModify {
		return
	}
	edited := c.layout.Capture(session.display, session.baseline)
	if !session.dirty && edited.Equal(session.buffered) {
		return
	}
	session.buffered, session.dirty = edited, true
	c.savePending(ctx, session)
}

func (c *Controller) savePending(ctx context.Context, session *Session) {
	log := logger.FromContext(ctx)
	if session.TargetID == uuid.Nil {
		log.Warn(LogMsgPendingWithoutActor, "target", session.TargetName)
		return
	}

	pending := domain.PendingInventory{
		ActorID:   session.TargetID,
		Nickname:  session.TargetName,
		Inventory: codec.Serialize(session.buffered),
	}
	if err := c.pending.Save(pending); err != nil {
		log.Error(LogMsgPendingQueueFailed, "target", session.TargetName, "error", err)
		return
	}
	log.Info(LogMsgPendingQueued, "target", session.TargetName)
}
