package chats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"

	"github.com/lingopeer/lingopeer-api/internal/platform/auth"
	"github.com/lingopeer/lingopeer-api/internal/platform/respond"
	"github.com/lingopeer/lingopeer-api/internal/platform/validate"
	chatsvc "github.com/lingopeer/lingopeer-api/internal/service/chat"
)

func setupEcho(user *auth.FirebaseUser, svc chatsvc.Service) *echo.Echo {
	e := echo.New()
	e.Validator = validate.New()
	e.HTTPErrorHandler = respond.NewHTTPErrorHandler()

	g := e.Group("", auth.Middleware(&auth.MockVerifier{User: user}))
	Register(g, svc)
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateChat(t *testing.T) {
	user := auth.TestUser()
	e := setupEcho(user, chatsvc.NewMockStore())

	rec := doRequest(e, http.MethodPost, "/chats", `{"participant":"user-456"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d; body: %s", rec.Code, rec.Body.String())
	}

	var conv Conversation
	if err := json.Unmarshal(rec.Body.Bytes(), &conv); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if conv.ID == "" {
		t.Fatal("expected non-empty conversation ID")
	}
	if len(conv.Participants) != 2 || conv.Participants[0] != user.UID {
		t.Fatalf("expected caller as participant, got %v", conv.Participants)
	}
	if loc := rec.Header().Get("Location"); loc != "/v1/chats/"+conv.ID {
		t.Fatalf("unexpected Location %q", loc)
	}
}

func TestCreateChat_WithSelf(t *testing.T) {
	user := auth.TestUser()
	e := setupEcho(user, chatsvc.NewMockStore())

	body := fmt.Sprintf(`{"participant":%q}`, user.UID)
	rec := doRequest(e, http.MethodPost, "/chats", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateChat_BlankParticipant(t *testing.T) {
	e := setupEcho(auth.TestUser(), chatsvc.NewMockStore())

	rec := doRequest(e, http.MethodPost, "/chats", `{"participant":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d; body: %s", rec.Code, rec.Body.String())
	}
}

func TestListChats(t *testing.T) {
	user := auth.TestUser()
	store := chatsvc.NewMockStore()
	ctx := context.Background()

	if _, err := store.CreateConversation(ctx, []string{user.UID, "user-456"}); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}
	if _, err := store.CreateConversation(ctx, []string{"user-789", "user-456"}); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	e := setupEcho(user, store)
	rec := doRequest(e, http.MethodGet, "/chats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var data ListData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if len(data.Conversations) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(data.Conversations))
	}
}

func TestSendAndReadMessages(t *testing.T) {
	user := auth.TestUser()
	store := chatsvc.NewMockStore()
	ctx := context.Background()

	conv, err := store.CreateConversation(ctx, []string{user.UID, "user-456"})
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	e := setupEcho(user, store)

	rec := doRequest(e, http.MethodPost, "/chats/"+conv.ID+"/messages", `{"text":"Guten Tag!"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d; body: %s", rec.Code, rec.Body.String())
	}

	var sent Message
	if err := json.Unmarshal(rec.Body.Bytes(), &sent); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if sent.Sender != user.UID || sent.Text != "Guten Tag!" {
		t.Fatalf("unexpected message: %+v", sent)
	}

	rec = doRequest(e, http.MethodGet, "/chats/"+conv.ID+"/messages", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var data MessagesData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if len(data.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(data.Messages))
	}
	entry := data.Messages[0]
	if !entry.ShowDivider || entry.DayLabel == "" {
		t.Fatalf("expected day divider on first message, got %+v", entry)
	}
	if !entry.ShowTime || entry.TimeLabel == "" {
		t.Fatalf("expected timestamp on first message, got %+v", entry)
	}
}

func TestMessages_UnknownTimezone(t *testing.T) {
	user := auth.TestUser()
	store := chatsvc.NewMockStore()
	conv, err := store.CreateConversation(context.Background(), []string{user.UID, "user-456"})
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	e := setupEcho(user, store)
	rec := doRequest(e, http.MethodGet, "/chats/"+conv.ID+"/messages?tz=Not/AZone", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMessages_NotParticipant(t *testing.T) {
	store := chatsvc.NewMockStore()
	conv, err := store.CreateConversation(context.Background(), []string{"user-1", "user-2"})
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	e := setupEcho(auth.TestUser(), store)
	rec := doRequest(e, http.MethodGet, "/chats/"+conv.ID+"/messages", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-participant, got %d", rec.Code)
	}
}

func TestSend_UnknownConversation(t *testing.T) {
	e := setupEcho(auth.TestUser(), chatsvc.NewMockStore())

	rec := doRequest(e, http.MethodPost, "/chats/missing/messages", `{"text":"hi"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSend_BlankText(t *testing.T) {
	user := auth.TestUser()
	store := chatsvc.NewMockStore()
	conv, err := store.CreateConversation(context.Background(), []string{user.UID, "user-456"})
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	e := setupEcho(user, store)
	rec := doRequest(e, http.MethodPost, "/chats/"+conv.ID+"/messages", `{"text":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d; body: %s", rec.Code, rec.Body.String())
	}
}

func TestChats_RequireAuth(t *testing.T) {
	e := echo.New()
	e.Validator = validate.New()
	e.HTTPErrorHandler = respond.NewHTTPErrorHandler()
	g := e.Group("", auth.Middleware(&auth.MockVerifier{Error: auth.ErrNoToken}))
	Register(g, chatsvc.NewMockStore())

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
