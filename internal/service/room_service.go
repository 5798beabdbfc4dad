package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mmynk/splitroom/internal/auth"
	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/roomcode"
	"github.com/mmynk/splitroom/internal/storage"
)

const maxCodeAttempts = 5

// RoomService implements room creation, joining and lookup.
type RoomService struct {
	store      storage.Store
	jwtManager *auth.JWTManager
	newCode    func() (string, error)
}

// NewRoomService creates a new RoomService with the given storage backend.
func NewRoomService(store storage.Store, jwtManager *auth.JWTManager) *RoomService {
	return &RoomService{
		store:      store,
		jwtManager: jwtManager,
		newCode:    roomcode.Generate,
	}
}

// parseCode normalizes user-typed room codes.
func parseCode(raw string) (string, error) {
	code := roomcode.Normalize(raw)
	if !roomcode.Valid(code) {
		return "", connect.NewError(connect.CodeInvalidArgument, errCodeInvalid)
	}
	return code, nil
}

func newMember(rawName string) (models.Member, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return models.Member{}, connect.NewError(connect.CodeInvalidArgument, errNameRequired)
	}
	return models.Member{ID: uuid.NewString(), Name: name}, nil
}

// CreateRoom creates a room under a fresh code with the caller as its first member.
func (s *RoomService) CreateRoom(ctx context.Context, req *connect.Request[CreateRoomRequest]) (*connect.Response[CreateRoomResponse], error) {
	slog.Info("CreateRoom request received", "name", req.Msg.Name)

	member, err := newMember(req.Msg.Name)
	if err != nil {
		return nil, err
	}

	var group *models.Group
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			slog.Error("CreateRoom failed to generate code", "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}

		name := strings.TrimSpace(req.Msg.RoomName)
		if name == "" {
			name = models.DefaultGroupName(code)
		}
		candidate := &models.Group{
			ID:      code,
			Name:    name,
			Members: []models.Member{member},
		}

		err = s.store.CreateGroup(ctx, candidate)
		if errors.Is(err, storage.ErrConflict) {
			slog.Warn("Room code collision", "code", code, "attempt", attempt)
			continue
		}
		if err != nil {
			slog.Error("CreateRoom failed", "error", err)
			return nil, toConnectError(err)
		}
		group = candidate
		break
	}
	if group == nil {
		return nil, connect.NewError(connect.CodeResourceExhausted, errCodeExhausted)
	}

	token, err := s.jwtManager.Generate(group.ID, member)
	if err != nil {
		slog.Error("Failed to generate token", "member_id", member.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Room created", "code", group.ID, "member_id", member.ID)

	return connect.NewResponse(&CreateRoomResponse{
		Room:   roomToWire(group),
		Member: memberToWire(member),
		Token:  token,
	}), nil
}

// JoinRoom appends a new member to an existing room.
func (s *RoomService) JoinRoom(ctx context.Context, req *connect.Request[JoinRoomRequest]) (*connect.Response[JoinRoomResponse], error) {
	slog.Info("JoinRoom request received", "code", req.Msg.Code, "name", req.Msg.Name)

	code, err := parseCode(req.Msg.Code)
	if err != nil {
		return nil, err
	}
	member, err := newMember(req.Msg.Name)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddMember(ctx, code, member); err != nil {
		slog.Warn("JoinRoom failed", "code", code, "error", err)
		return nil, toConnectError(err)
	}

	group, err := s.store.GetGroup(ctx, code)
	if err != nil {
		slog.Error("Failed to fetch joined room", "code", code, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(code, member)
	if err != nil {
		slog.Error("Failed to generate token", "member_id", member.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Member joined room", "code", code, "member_id", member.ID, "members_count", len(group.Members))

	return connect.NewResponse(&JoinRoomResponse{
		Room:   roomToWire(group),
		Member: memberToWire(member),
		Token:  token,
	}), nil
}

// GetRoom retrieves a room and its members.
func (s *RoomService) GetRoom(ctx context.Context, req *connect.Request[GetRoomRequest]) (*connect.Response[GetRoomResponse], error) {
	code, err := parseCode(req.Msg.Code)
	if err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, code)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&GetRoomResponse{Room: roomToWire(group)}), nil
}
