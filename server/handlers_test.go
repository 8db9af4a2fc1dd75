package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Subham-Satapathy/zoombie-shooter/game"
)

func TestHandleStats(t *testing.T) {
	s := newTestServer(1)
	gs := s.gameState

	s.startNewWave()
	addZombie(s, game.KindWalker, 10, 0)
	gs.Player.Score = 75
	gs.Player.Kills = 6

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	s.HandleStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %s", ct)
	}

	var stats struct {
		Wave      int  `json:"wave"`
		Active    bool `json:"waveActive"`
		Score     int  `json:"score"`
		Kills     int  `json:"kills"`
		Remaining int  `json:"remaining"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Error unmarshaling stats: %v", err)
	}

	if stats.Wave != 1 || !stats.Active {
		t.Errorf("Expected active wave 1, got wave=%d active=%v", stats.Wave, stats.Active)
	}
	if stats.Score != 75 || stats.Kills != 6 {
		t.Errorf("Expected score 75 and 6 kills, got %d/%d", stats.Score, stats.Kills)
	}
	if stats.Remaining != 1 {
		t.Errorf("Expected 1 remaining zombie, got %d", stats.Remaining)
	}
}

func TestSendGameStateSnapshot(t *testing.T) {
	s := newTestServer(1)
	gs := s.gameState

	s.startNewWave()
	addZombie(s, game.KindWalker, 10, 0)
	corpse := addZombie(s, game.KindRunner, 12, 0)
	corpse.TakeDamage(10000)
	drainMessages(s)

	s.sendGameState()

	updates := messagesOfType(drainMessages(s), MsgTypeUpdate)
	if len(updates) != 1 {
		t.Fatalf("Expected one update message, got %d", len(updates))
	}

	data := updates[0].Data.(UpdateData)
	if data.Player != gs.Player {
		t.Error("Expected the snapshot to carry the defender")
	}
	if len(data.Zombies) != 2 {
		t.Errorf("Expected both zombies (one corpse in its death window), got %d", len(data.Zombies))
	}
	if data.Remaining != 1 {
		t.Errorf("Expected 1 live zombie remaining, got %d", data.Remaining)
	}
	if !data.WaveActive || data.Wave.Number != 1 {
		t.Errorf("Expected active wave 1 in the snapshot, got %+v", data.Wave)
	}
}
