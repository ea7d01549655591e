package server

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/folio/pkg/protocol"
)

// ReadLoop continuously reads messages from the WebSocket connection.
// It decodes frames, processes control messages, and queues events.
// This method blocks until the connection is closed or an error occurs.
func (s *Session) ReadLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				s.metrics.WebSocketError("read")
			}
			return
		}

		s.UpdateLastActive()
		s.BytesReceived(len(msg))

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "error", err)
			s.sendErrorMessage(protocol.ErrInvalidFrame, "Invalid frame")
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)

		case protocol.FrameControl:
			if !s.handleControlFrame(frame.Payload) {
				return
			}

		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type.String())
		}
	}
}

// handleEventFrame decodes and queues an event from the client.
func (s *Session) handleEventFrame(payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.logger.Error("event decode error", "error", err)
		s.sendErrorMessage(protocol.ErrInvalidEvent, "Invalid event format")
		return
	}

	if err := s.QueueEvent(ev); err != nil {
		s.sendErrorMessage(protocol.ErrRateLimited, "Event queue full")
	}
}

// handleControlFrame handles ping, pong and close messages. It returns
// false when the client asked to close.
func (s *Session) handleControlFrame(payload []byte) bool {
	ct, data, err := protocol.DecodeControl(payload)
	if err != nil {
		s.logger.Error("control decode error", "error", err)
		return true
	}

	switch ct {
	case protocol.ControlPing:
		if pp, ok := data.(*protocol.PingPong); ok {
			s.sendPong(pp.Timestamp)
		}

	case protocol.ControlPong:
		s.logger.Debug("received pong")

	case protocol.ControlClose:
		if cm, ok := data.(*protocol.CloseMessage); ok {
			s.logger.Info("client closing", "reason", cm.Reason.String(), "message", cm.Message)
		}
		return false
	}
	return true
}

// WriteLoop sends heartbeat pings until the session is closed.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sendPing(); err != nil {
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// EventLoop owns the document. Client events and loop tasks, timer
// callbacks included, run here one at a time.
func (s *Session) EventLoop() {
	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)

		case fn := <-s.tasks:
			s.runTask(fn)

		case <-s.done:
			return
		}
	}
}

// Start initializes the page controller and starts all session loops.
// This should be called after the handshake is complete.
func (s *Session) Start() {
	s.post(s.ctrl.Init)
	go s.ReadLoop()
	go s.WriteLoop()
	go s.EventLoop()
}

// SendPatches sends a batch of patches to the client. Batches that do not
// fit in one frame are split across several.
func (s *Session) SendPatches(patches []protocol.Patch) {
	if len(patches) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return
	}
	if err := s.sendPatchesLocked(patches); err != nil {
		s.logger.Error("write error", "error", err)
		s.metrics.WebSocketError("write")
		go s.Close()
	}
}

func (s *Session) sendPatchesLocked(patches []protocol.Patch) error {
	seq := s.sendSeq.Add(1)
	payload := protocol.EncodePatches(&protocol.PatchesFrame{Seq: seq, Patches: patches})
	frame := protocol.NewFrame(protocol.FramePatches, payload)
	data, err := frame.Encode()
	if errors.Is(err, protocol.ErrFrameTooLarge) {
		s.sendSeq.Add(^uint64(0))
		if len(patches) == 1 {
			s.logger.Error("patch too large, dropped", "op", patches[0].Op.String(), "hid", patches[0].HID)
			return nil
		}
		mid := len(patches) / 2
		if err := s.sendPatchesLocked(patches[:mid]); err != nil {
			return err
		}
		return s.sendPatchesLocked(patches[mid:])
	}
	if err != nil {
		return err
	}

	if err := s.writeLocked(data); err != nil {
		return err
	}
	s.bytesSent.Add(uint64(len(data)))
	s.patchCount.Add(uint64(len(patches)))
	s.metrics.PatchesSent(len(patches), len(data))
	return nil
}

// SendClose sends a close control message to the client.
func (s *Session) SendClose(reason protocol.CloseReason, message string) {
	ct, cm := protocol.NewClose(reason, message)
	if err := s.sendFrame(protocol.FrameControl, protocol.EncodeControl(ct, cm)); err != nil {
		s.logger.Debug("close send failed", "error", err)
	}
}

// sendPing sends a heartbeat ping carrying the server time.
func (s *Session) sendPing() error {
	pp := &protocol.PingPong{Timestamp: uint64(time.Now().UnixMilli())}
	return s.sendFrame(protocol.FrameControl, protocol.EncodeControl(protocol.ControlPing, pp))
}

// sendPong answers a client ping.
func (s *Session) sendPong(timestamp uint64) {
	ct, pp := protocol.NewPong(timestamp)
	if err := s.sendFrame(protocol.FrameControl, protocol.EncodeControl(ct, pp)); err != nil {
		s.logger.Error("pong error", "error", err)
	}
}

// sendErrorMessage reports a non-fatal error to the client.
func (s *Session) sendErrorMessage(code protocol.ErrorCode, message string) {
	payload := protocol.EncodeErrorMessage(protocol.NewError(code, message))
	if err := s.sendFrame(protocol.FrameError, payload); err != nil {
		s.logger.Error("error send failed", "error", err)
	}
}

func (s *Session) sendFrame(ft protocol.FrameType, payload []byte) error {
	data, err := protocol.NewFrame(ft, payload).Encode()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrSessionClosed
	}
	if err := s.writeLocked(data); err != nil {
		return err
	}
	s.bytesSent.Add(uint64(len(data)))
	return nil
}

func (s *Session) writeLocked(data []byte) error {
	if s.conn == nil {
		return ErrNoConnection
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}
