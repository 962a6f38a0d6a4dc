package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	gm := service.NewGameManager(model.DefaultTimeControl, time.Hour, nil)
	t.Cleanup(gm.Shutdown)
	gs := service.NewGameService(gm)
	app := fiber.New()
	RegisterRoutes(app, gs, NewGameController(gs, nil), NewWebSocketController(gs, nil), nil)
	return app
}

// do sends a request and decodes a JSON response body into out when out is
// not nil.
func do(t *testing.T, app *fiber.App, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func createGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	var created struct {
		GameID string         `json:"game_id"`
		State  model.GameView `json:"state"`
	}
	if code := do(t, app, "POST", "/api/game", nil, &created); code != fiber.StatusCreated {
		t.Fatalf("create: status %d", code)
	}
	if created.GameID == "" || created.State.ToMove != model.White {
		t.Fatalf("create: %+v", created)
	}
	return created.GameID
}

type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

func TestCreateAndGetGame(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	id := createGame(t, app)

	var state model.GameView
	if code := do(t, app, "GET", "/api/game/"+id, nil, &state); code != fiber.StatusOK {
		t.Fatalf("get: status %d", code)
	}
	if state.Status.Kind != model.StatusNormal || len(state.MoveHistory) != 0 {
		t.Fatalf("state = %+v", state)
	}

	var eb errorBody
	if code := do(t, app, "GET", "/api/game/nope", nil, &eb); code != fiber.StatusNotFound || eb.Error == "" {
		t.Fatalf("unknown game: status %d, body %+v", code, eb)
	}
}

func TestMakeMove(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	id := createGame(t, app)

	var outcome service.MoveOutcome
	code := do(t, app, "POST", "/api/game/"+id+"/move", model.MoveRequest{From: "e2", To: "e4"}, &outcome)
	if code != fiber.StatusOK || outcome.Result.Notation != "e4" || outcome.State.ToMove != model.Black {
		t.Fatalf("move: status %d, outcome %+v", code, outcome.Result)
	}

	var eb errorBody
	code = do(t, app, "POST", "/api/game/"+id+"/move", model.MoveRequest{From: "e4", To: "e5"}, &eb)
	if code != fiber.StatusUnprocessableEntity || eb.Reason != string(model.ReasonWrongTurn) {
		t.Fatalf("wrong turn: status %d, body %+v", code, eb)
	}

	eb = errorBody{}
	code = do(t, app, "POST", "/api/game/"+id+"/move", model.MoveRequest{From: "x1", To: "e5"}, &eb)
	if code != fiber.StatusBadRequest {
		t.Fatalf("bad square: status %d, body %+v", code, eb)
	}

	code = do(t, app, "POST", "/api/game/"+id+"/move", []byte(`{"from":`), &eb)
	if code != fiber.StatusBadRequest {
		t.Fatalf("bad body: status %d", code)
	}
}

func TestLegalMovesAndStatus(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	id := createGame(t, app)

	var moves struct {
		Square       string   `json:"square"`
		Destinations []string `json:"destinations"`
	}
	if code := do(t, app, "GET", "/api/game/"+id+"/moves/g1", nil, &moves); code != fiber.StatusOK {
		t.Fatalf("moves: status %d", code)
	}
	if len(moves.Destinations) != 2 || moves.Destinations[0] != "f3" || moves.Destinations[1] != "h3" {
		t.Fatalf("destinations = %v", moves.Destinations)
	}

	for _, m := range []model.MoveRequest{{From: "f2", To: "f3"}, {From: "e7", To: "e5"}, {From: "g2", To: "g4"}, {From: "d8", To: "h4"}} {
		if code := do(t, app, "POST", "/api/game/"+id+"/move", m, nil); code != fiber.StatusOK {
			t.Fatalf("move %s%s: status %d", m.From, m.To, code)
		}
	}

	var status struct {
		Status   model.Status `json:"status"`
		Terminal bool         `json:"terminal"`
	}
	if code := do(t, app, "GET", "/api/game/"+id+"/status", nil, &status); code != fiber.StatusOK {
		t.Fatalf("status: status %d", code)
	}
	if status.Status.Kind != model.StatusCheckmate || status.Status.Winner != model.Black || !status.Terminal {
		t.Fatalf("status = %+v", status)
	}
}

func TestPromotionEndpoints(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	id := createGame(t, app)

	for _, m := range [][2]string{
		{"a2", "a4"}, {"b7", "b5"}, {"a4", "b5"}, {"a7", "a6"},
		{"b5", "a6"}, {"c8", "b7"}, {"a6", "b7"}, {"g8", "f6"}, {"b7", "a8"},
	} {
		if code := do(t, app, "POST", "/api/game/"+id+"/move", model.MoveRequest{From: m[0], To: m[1]}, nil); code != fiber.StatusOK {
			t.Fatalf("move %s%s: status %d", m[0], m[1], code)
		}
	}

	var eb errorBody
	if code := do(t, app, "POST", "/api/game/"+id+"/move", model.MoveRequest{From: "e7", To: "e5"}, &eb); code != fiber.StatusUnprocessableEntity {
		t.Fatalf("move while pending: status %d", code)
	}
	if code := do(t, app, "POST", "/api/game/"+id+"/promotion", map[string]string{"piece": "pawn"}, &eb); code != fiber.StatusUnprocessableEntity {
		t.Fatalf("bad piece: status %d", code)
	}

	var outcome service.MoveOutcome
	if code := do(t, app, "POST", "/api/game/"+id+"/promotion", map[string]string{"piece": "queen"}, &outcome); code != fiber.StatusOK {
		t.Fatalf("promotion: status %d", code)
	}
	if outcome.Result.Notation != "bxa8=Q" {
		t.Fatalf("notation = %q", outcome.Result.Notation)
	}
	if code := do(t, app, "POST", "/api/game/"+id+"/promotion", map[string]string{"piece": "queen"}, &eb); code != fiber.StatusUnprocessableEntity {
		t.Fatalf("promotion with none pending: status %d", code)
	}
}

func TestUndoRedoNewGame(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	id := createGame(t, app)

	var step struct {
		Changed bool           `json:"changed"`
		State   model.GameView `json:"state"`
	}
	if code := do(t, app, "POST", "/api/game/"+id+"/undo", nil, &step); code != fiber.StatusOK || step.Changed {
		t.Fatalf("undo on fresh game: status %d, %+v", code, step)
	}
	do(t, app, "POST", "/api/game/"+id+"/move", model.MoveRequest{From: "e2", To: "e4"}, nil)

	if code := do(t, app, "POST", "/api/game/"+id+"/undo", nil, &step); code != fiber.StatusOK || !step.Changed || step.State.ToMove != model.White {
		t.Fatalf("undo: status %d, %+v", code, step)
	}
	if code := do(t, app, "POST", "/api/game/"+id+"/redo", nil, &step); code != fiber.StatusOK || !step.Changed || step.State.ToMove != model.Black {
		t.Fatalf("redo: status %d, %+v", code, step)
	}

	var state model.GameView
	if code := do(t, app, "POST", "/api/game/"+id+"/new", nil, &state); code != fiber.StatusOK || len(state.MoveHistory) != 0 {
		t.Fatalf("new: status %d, %+v", code, state)
	}
}

func TestSaveLoadExportImport(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	id := createGame(t, app)

	var eb errorBody
	if code := do(t, app, "POST", "/api/game/"+id+"/load", nil, &eb); code != fiber.StatusNotFound {
		t.Fatalf("load without save: status %d", code)
	}

	do(t, app, "POST", "/api/game/"+id+"/move", model.MoveRequest{From: "e2", To: "e4"}, nil)
	if code := do(t, app, "POST", "/api/game/"+id+"/save", nil, nil); code != fiber.StatusOK {
		t.Fatalf("save: status %d", code)
	}
	do(t, app, "POST", "/api/game/"+id+"/move", model.MoveRequest{From: "e7", To: "e5"}, nil)

	var state model.GameView
	if code := do(t, app, "POST", "/api/game/"+id+"/load", nil, &state); code != fiber.StatusOK || len(state.MoveHistory) != 1 {
		t.Fatalf("load: status %d, history %v", code, state.MoveHistory)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/game/"+id+"/export", nil), -1)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	snapshot, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("export: status %d, %v", resp.StatusCode, err)
	}

	other := createGame(t, app)
	state = model.GameView{}
	if code := do(t, app, "POST", "/api/game/"+other+"/import", snapshot, &state); code != fiber.StatusOK || state.ToMove != model.Black {
		t.Fatalf("import: status %d, %+v", code, state)
	}
	if code := do(t, app, "POST", "/api/game/"+other+"/import", []byte(`{"version":1}`), &eb); code != fiber.StatusBadRequest {
		t.Fatalf("corrupt import: status %d", code)
	}
}

func TestDeleteGame(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	id := createGame(t, app)

	if code := do(t, app, "DELETE", "/api/game/"+id, nil, nil); code != fiber.StatusNoContent {
		t.Fatalf("delete: status %d", code)
	}
	var eb errorBody
	if code := do(t, app, "GET", "/api/game/"+id, nil, &eb); code != fiber.StatusNotFound {
		t.Fatalf("get after delete: status %d", code)
	}
	if code := do(t, app, "DELETE", "/api/game/"+id, nil, &eb); code != fiber.StatusNotFound {
		t.Fatalf("second delete: status %d", code)
	}
}

func TestGetOpening(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	id := createGame(t, app)

	for _, m := range []model.MoveRequest{{From: "e2", To: "e4"}, {From: "c7", To: "c5"}} {
		if code := do(t, app, "POST", "/api/game/"+id+"/move", m, nil); code != fiber.StatusOK {
			t.Fatalf("move %s%s: status %d", m.From, m.To, code)
		}
	}
	var o service.Opening
	if code := do(t, app, "GET", "/api/game/"+id+"/opening", nil, &o); code != fiber.StatusOK {
		t.Fatalf("opening: status %d", code)
	}
	if o.Code != "B20" || o.Title == "" {
		t.Fatalf("opening = %+v", o)
	}
}
