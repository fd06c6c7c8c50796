package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/skirmishlabs/combat-api/internal/combat"
	"github.com/skirmishlabs/combat-api/internal/errors"
	"github.com/skirmishlabs/combat-api/internal/handlers/httpapi"
	battleorch "github.com/skirmishlabs/combat-api/internal/orchestrators/battle"
	battlemock "github.com/skirmishlabs/combat-api/internal/orchestrators/battle/mock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *battlemock.MockService
	router      *gin.Engine
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.mockService = battlemock.NewMockService(s.ctrl)

	handler, err := httpapi.NewHandler(&httpapi.Config{BattleService: s.mockService})
	s.Require().NoError(err)

	s.router = gin.New()
	handler.RegisterRoutes(s.router)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) TestHealthz() {
	w := s.request(http.MethodGet, "/healthz", "")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func (s *HandlerTestSuite) TestCreateBattle() {
	s.mockService.EXPECT().
		CreateBattle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *battleorch.CreateBattleInput) (*battleorch.CreateBattleOutput, error) {
			s.Equal("stage-1", input.StageID)
			s.Require().Len(input.Squad, 1)
			s.Equal("warrior", input.Squad[0].ClassID)
			s.Equal(map[string]int{"potion": 2}, input.Items)
			return &battleorch.CreateBattleOutput{
				State: &battleorch.BattleState{
					ID:      "btl_1",
					StageID: "stage-1",
					Phase:   combat.PhaseCharacterTurn,
					Round:   1,
				},
				Intents: []combat.Intent{{Type: combat.IntentBattleStart}},
			}, nil
		})

	w := s.request(http.MethodPost, "/v1/battles", `{
		"stage_id": "stage-1",
		"squad": [{"class_id": "warrior", "name": "Aldric", "level": 3}],
		"items": {"potion": 2}
	}`)

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), `"btl_1"`)
	s.Contains(w.Body.String(), `"battle_start"`)
}

func (s *HandlerTestSuite) TestCreateBattle_BadBody() {
	w := s.request(http.MethodPost, "/v1/battles", `{"squad": []}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "INVALID_ARGUMENT")
}

func (s *HandlerTestSuite) TestGetBattle_NotFound() {
	s.mockService.EXPECT().
		GetBattle(gomock.Any(), &battleorch.GetBattleInput{BattleID: "btl_404"}).
		Return(nil, errors.NotFound("battle record not found: btl_404"))

	w := s.request(http.MethodGet, "/v1/battles/btl_404", "")
	s.Equal(http.StatusNotFound, w.Code)
	s.Contains(w.Body.String(), "NOT_FOUND")
}

func (s *HandlerTestSuite) TestSubmitAction() {
	s.mockService.EXPECT().
		SubmitAction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *battleorch.SubmitActionInput) (*battleorch.SubmitActionOutput, error) {
			s.Equal("btl_1", input.BattleID)
			s.Equal(combat.ActionMove, input.Action.Kind)
			s.Equal("p1", input.Action.ActorID)
			s.Require().NotNil(input.Action.To)
			s.Equal(combat.Position{Row: 3, Col: 2}, *input.Action.To)
			return &battleorch.SubmitActionOutput{
				State:   &battleorch.BattleState{ID: "btl_1", Phase: combat.PhaseCharacterTurn},
				Intents: []combat.Intent{{Type: combat.IntentMove, ActorID: "p1"}},
			}, nil
		})

	w := s.request(http.MethodPost, "/v1/battles/btl_1/actions", `{
		"actor_id": "p1",
		"kind": "move",
		"to": {"row": 3, "col": 2}
	}`)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"move"`)
}

func (s *HandlerTestSuite) TestSubmitAction_DomainErrorStatuses() {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"illegal move", errors.IllegalMove("cannot reach"), http.StatusUnprocessableEntity},
		{"illegal target", errors.IllegalTarget("not legal"), http.StatusUnprocessableEntity},
		{"insufficient mana", errors.InsufficientMana("too tired"), http.StatusUnprocessableEntity},
		{"battle over", errors.BattleOver("already decided"), http.StatusConflict},
		{"not your turn", errors.FailedPrecondition("not your turn"), http.StatusPreconditionFailed},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.mockService.EXPECT().
				SubmitAction(gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			w := s.request(http.MethodPost, "/v1/battles/btl_1/actions", `{"actor_id":"p1","kind":"wait"}`)
			s.Equal(tc.status, w.Code)
		})
	}
}

func (s *HandlerTestSuite) TestListEvents() {
	s.mockService.EXPECT().
		ListEvents(gomock.Any(), &battleorch.ListEventsInput{BattleID: "btl_1", SinceSeq: 5}).
		Return(&battleorch.ListEventsOutput{
			Intents: []combat.Intent{{Seq: 5, Type: combat.IntentWait}},
			NextSeq: 6,
		}, nil)

	w := s.request(http.MethodGet, "/v1/battles/btl_1/events?since=5", "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"next_seq":6`)
}

func (s *HandlerTestSuite) TestForfeitBattle() {
	s.mockService.EXPECT().
		ForfeitBattle(gomock.Any(), &battleorch.ForfeitBattleInput{BattleID: "btl_1"}).
		Return(&battleorch.ForfeitBattleOutput{
			State: &battleorch.BattleState{
				ID:    "btl_1",
				Phase: combat.PhaseBattleOver,
				Result: &combat.Result{
					Winner:       combat.WinnerEnemy,
					TurnsElapsed: 4,
				},
			},
		}, nil)

	w := s.request(http.MethodPost, "/v1/battles/btl_1/forfeit", "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"enemy"`)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
