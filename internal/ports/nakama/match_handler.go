package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/kc92/Desperado-s-Destiny-sub018/internal/app"
	"github.com/kc92/Desperado-s-Destiny-sub018/internal/bot"
	"github.com/kc92/Desperado-s-Destiny-sub018/internal/config"
	"github.com/kc92/Desperado-s-Destiny-sub018/internal/domain"
	"github.com/kc92/Desperado-s-Destiny-sub018/internal/ports"
)

// matchLabel is what the find_table RPC queries against.
type matchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// MatchState holds the authoritative runtime state for one saloon table.
type MatchState struct {
	Seats     [4]string `json:"seats"`      // Array of user IDs, empty string means seat is empty
	OwnerSeat int       `json:"owner_seat"` // Seat index of the table owner
	Tick      int64     `json:"tick"`       // Current tick for turn-based logic

	Variant domain.Variant `json:"variant"` // Game dealt at this table
	Stake   int64          `json:"stake"`   // Gold at stake per player
	Rake    float64        `json:"rake"`    // House cut taken from winnings

	Presences map[string]runtime.Presence `json:"-"` // Map UserId -> Presence for targeted messaging
	App       *app.Service                `json:"-"` // Card engine use-cases
	Session   *domain.Session             `json:"-"` // Current session (nil if in lobby)

	TurnSeat     int   `json:"turn_seat"`     // Seat the turn timer is watching, -1 if none
	TurnDeadline int64 `json:"turn_deadline"` // Tick at which the watched seat is forced to act
	TurnDuration int   `json:"turn_duration"` // Seconds a seat may stall before being forced

	BotsEnabled          bool                  `json:"bots_enabled"`
	BotMinDelay          int                   `json:"bot_min_delay"`
	BotMaxDelay          int                   `json:"bot_max_delay"`
	BotAutoFillDelay     int                   `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64                 `json:"bot_wait_until"`
	LastSinglePlayerTick int64                 `json:"last_single_player_tick"`
	Bots                 map[string]*bot.Agent `json:"-"`

	Economy     ports.EconomyPort     `json:"-"`
	Progression ports.ProgressionPort `json:"-"`
	Identities  ports.IdentityPort    `json:"-"`

	DisplayNames map[string]string `json:"display_names"` // Resolved display names per user id
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// seatOf returns the seat index for a user id or -1 when not seated.
func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserId := range ms.Seats {
		if seatUserId == userID {
			return i
		}
	}
	return -1
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans reports whether no human player remains
// connected to the table.
func shouldTerminateNoHumans(state *MatchState) bool {
	for userId := range state.Presences {
		if !isBotUserId(userId) {
			return false
		}
	}
	return true
}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing saloon table handler.")

	// Load bot identities from data folder
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	// Load table configuration
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	variant := domain.VariantEuchre
	if v, ok := params["variant"].(string); ok && domain.Variant(v).Valid() {
		variant = domain.Variant(v)
	}
	tier := ""
	if t, ok := params["tier"].(string); ok {
		tier = t
	}

	state := &MatchState{
		OwnerSeat:    -1,
		Variant:      variant,
		Stake:        config.GetStake(tier),
		Rake:         config.GetRake(),
		Presences:    make(map[string]runtime.Presence),
		App:          app.NewService(nil),
		TurnSeat:     -1,
		TurnDuration: config.GetTurnDuration(),
		Bots:         make(map[string]*bot.Agent),
		Economy:      NewNakamaEconomyAdapter(nk),
		Progression:  NewNakamaProgressionAdapter(nk),
		Identities:   NewNakamaIdentityAdapter(nk),
		DisplayNames: make(map[string]string),
	}

	// Read environment variables for bot configuration
	env := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["saloon_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["saloon_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["saloon_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["saloon_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	// Defaults if not set
	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
	}

	label := matchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  string(variant),
		Phase: "lobby",
	}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // 1 tick per second
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// A player who disconnected mid-session still owns a seat; let
	// them back in.
	for _, seatUserId := range matchState.Seats {
		if seatUserId == presence.GetUserId() {
			return matchState, true, ""
		}
	}

	// Allow join if there is an empty seat OR a bot to replace (if game hasn't started)
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Session == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Table full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if matchState.Identities != nil {
			if identity, err := matchState.Identities.GetIdentity(ctx, p.GetUserId()); err == nil && identity.DisplayName != "" {
				matchState.DisplayNames[p.GetUserId()] = identity.DisplayName
			}
		}

		// Assign seat: a returning player reclaims their old seat,
		// otherwise try empty seats first, then bots (if lobby).
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				logger.Info("MatchJoin: User %s reclaimed seat %d.", p.GetUserId(), i)
				assigned = true
				break
			}
		}

		if !assigned {
			for i, seatUserId := range matchState.Seats {
				if seatUserId == "" {
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned && matchState.Session == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastTableState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				if matchState.Session == nil {
					// Lobby: free the seat.
					matchState.Seats[i] = ""
					logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
				} else {
					// Mid-session the seat keeps its occupant; the turn
					// timer plays for the absent player.
					logger.Debug("MatchLeave: User %s left mid-session, seat %d runs on the timer.", p.GetUserId(), i)
				}
				break
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		}
	}

	if shouldTerminateNoHumans(matchState) {
		logger.Info("MatchLeave: Terminating table with no connected humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpSubmitBid:
			mh.handleSubmitBid(ctx, matchState, dispatcher, logger, msg)
		case OpDeclareTrump:
			mh.handleDeclareTrump(ctx, matchState, dispatcher, logger, msg)
		case OpDiscardCard:
			mh.handleDiscardCard(ctx, matchState, dispatcher, logger, msg)
		case OpShowMeld:
			mh.handleShowMeld(ctx, matchState, dispatcher, logger, msg)
		case OpPeekHand:
			mh.handlePeekHand(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	mh.enforceTurnTimer(ctx, matchState, dispatcher, logger)

	return matchState
}

// enforceTurnTimer watches the current actor and forces the engine's
// default action when the seat stalls past the turn duration.
func (mh *matchHandler) enforceTurnTimer(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Session == nil || state.TurnDuration <= 0 {
		state.TurnSeat = -1
		return
	}

	actor, ok := state.Session.CurrentActor()
	if !ok {
		state.TurnSeat = -1
		return
	}

	// Bot seats act on their own schedule.
	if isBotUserId(state.Seats[actor]) {
		state.TurnSeat = -1
		return
	}

	if state.TurnSeat != int(actor) {
		state.TurnSeat = int(actor)
		state.TurnDeadline = state.Tick + int64(state.TurnDuration)
		return
	}

	if state.Tick < state.TurnDeadline {
		return
	}

	logger.Info("enforceTurnTimer: Seat %d stalled, forcing default action.", actor)
	events, err := state.App.ForceAction(state.Session, actor)
	if err != nil {
		logger.Error("enforceTurnTimer: Force action failed for seat %d: %v", actor, err)
		state.TurnDeadline = state.Tick + int64(state.TurnDuration)
		return
	}
	state.TurnSeat = -1

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.pump(ctx, state, dispatcher, logger)
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if state.Session == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						identity := bot.GetBotIdentity(i)
						botID := identity.UserID
						state.Seats[i] = botID

						agent, err := bot.NewAgent(botID)
						if err != nil {
							logger.Error("Failed to create bot agent for %s: %v", botID, err)
						} else {
							state.Bots[botID] = agent
						}

						logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastTableState(state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Handle bot turns in-game
	actor, ok := state.Session.CurrentActor()
	if !ok {
		state.BotWaitUntil = 0
		return
	}
	currentUserID := state.Seats[actor]
	if !isBotUserId(currentUserID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", currentUserID, actor, state.BotWaitUntil, state.Tick)
	}

	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentUserID]
	if !exists {
		var err error
		agent, err = bot.NewAgent(currentUserID)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentUserID] = agent
	}

	action, err := agent.Act(state.Session, actor)
	if err != nil {
		logger.Error("processBots: Bot %s failed to choose an action: %v", currentUserID, err)
		return
	}

	events, err := mh.applyAction(state, actor, action)
	if err != nil {
		// Fall back to the forced default so a confused bot cannot
		// stall the table.
		logger.Warn("processBots: Bot %s made an illegal move (%v), forcing default.", currentUserID, err)
		events, err = state.App.ForceAction(state.Session, actor)
		if err != nil {
			logger.Error("processBots: Forced action also failed for seat %d: %v", actor, err)
			return
		}
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.pump(ctx, state, dispatcher, logger)
}

// applyAction routes a generic engine action to the matching use-case.
func (mh *matchHandler) applyAction(state *MatchState, seat domain.Seat, a domain.Action) ([]app.Event, error) {
	switch a.Type {
	case domain.ActionBid:
		return state.App.SubmitBid(state.Session, seat, a.Bid)
	case domain.ActionDeclareTrump:
		return state.App.DeclareTrump(state.Session, seat, a.Suit)
	case domain.ActionDiscard:
		return state.App.DiscardCard(state.Session, seat, a.Card)
	case domain.ActionShowMeld:
		return state.App.ShowMeld(state.Session, seat, a.Melds)
	case domain.ActionPlayCard:
		return state.App.PlayCard(state.Session, seat, a.Card)
	default:
		return nil, domain.ErrPhaseViolation
	}
}

// pump advances the session through its automatic phases: a finished
// round gets scored and the next round gets dealt until a seat has to
// act again or the game ends.
func (mh *matchHandler) pump(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for state.Session != nil {
		switch state.Session.Phase {
		case domain.PhaseScoring:
			_, events, err := state.App.ScoreRound(state.Session, state.Stake, state.Rake)
			if err != nil {
				logger.Error("pump: Failed to score round: %v", err)
				return
			}
			for _, ev := range events {
				mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
			}
		case domain.PhaseDeal:
			if state.Session.Complete {
				return
			}
			events, err := state.App.InitializeRound(state.Session)
			if err != nil {
				logger.Error("pump: Failed to deal round: %v", err)
				return
			}
			for _, ev := range events {
				mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
			}
		case domain.PhaseGameOver:
			// Settlement happened inside the game_ended broadcast.
			return
		default:
			return
		}
	}
}

func (mh *matchHandler) broadcastTableState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var playerStates []playerStateDTO
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if name, exists := state.DisplayNames[userId]; exists {
			displayName = name
		} else if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userId); name != "" {
			displayName = name
		}

		playerStates = append(playerStates, playerStateDTO{
			UserID:      userId,
			Seat:        i,
			IsOwner:     i == state.OwnerSeat,
			DisplayName: displayName,
			Team:        i % 2,
		})
	}

	snapshot := tableStateEvent{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Variant:   string(state.Variant),
		Players:   playerStates,
	}
	bytes, _ := json.Marshal(snapshot)
	dispatcher.BroadcastMessage(OpTableState, bytes, nil, nil, true)
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	request := startGameRequest{}
	if len(msg.GetData()) > 0 {
		if err := json.Unmarshal(msg.GetData(), &request); err != nil {
			logger.Warn("StartGame: Invalid request from %s: %v", senderID, err)
			return
		}
	}

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start a game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}

	if state.Session != nil {
		logger.Warn("StartGame: Session already running.")
		return
	}

	if state.GetOccupiedSeatCount() < len(state.Seats) {
		logger.Warn("StartGame: Cannot start with %d players. Need a full table.", state.GetOccupiedSeatCount())
		return
	}

	// The owner may change the variant while the table is in the lobby.
	if v := domain.Variant(request.Variant); v.Valid() {
		state.Variant = v
	}
	if request.Tier != "" {
		state.Stake = config.GetStake(request.Tier)
	}

	opts := domain.SessionOptions{}
	if vc, ok := config.GetVariantConfig(string(state.Variant)); ok {
		opts.WinScore = vc.WinScore
		opts.MaxRounds = vc.MaxRounds
		opts.MinBid = vc.MinBid
		opts.BidStep = vc.BidStep
	}

	sess, events, err := state.App.StartSession(state.Variant, opts)
	if err != nil {
		logger.Error("StartGame: Failed to start session: %v", err)
		return
	}
	state.Session = sess

	mh.updateLabel(state, dispatcher, logger)

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.pump(ctx, state, dispatcher, logger)

	logger.Info("StartGame: %s session started at table.", state.Variant)
}

func (mh *matchHandler) handleSubmitBid(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if state.Session == nil {
		logger.Warn("handleSubmitBid: No session running.")
		return
	}

	request := submitBidRequest{}
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleSubmitBid: Failed to unmarshal request: %v", err)
		return
	}

	events, err := state.App.SubmitBid(state.Session, domain.Seat(senderSeat), fromBidDTO(request.Bid))
	if err != nil {
		logger.Warn("handleSubmitBid: User %s (seat %d) failed to bid: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.pump(ctx, state, dispatcher, logger)
}

func (mh *matchHandler) handleDeclareTrump(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if state.Session == nil {
		logger.Warn("handleDeclareTrump: No session running.")
		return
	}

	request := declareTrumpRequest{}
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleDeclareTrump: Failed to unmarshal request: %v", err)
		return
	}

	events, err := state.App.DeclareTrump(state.Session, domain.Seat(senderSeat), domain.Suit(request.Suit))
	if err != nil {
		logger.Warn("handleDeclareTrump: User %s (seat %d) failed: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleDiscardCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if state.Session == nil {
		logger.Warn("handleDiscardCard: No session running.")
		return
	}

	request := discardCardRequest{}
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleDiscardCard: Failed to unmarshal request: %v", err)
		return
	}

	events, err := state.App.DiscardCard(state.Session, domain.Seat(senderSeat), fromCardDTO(request.Card))
	if err != nil {
		logger.Warn("handleDiscardCard: User %s (seat %d) failed: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleShowMeld(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if state.Session == nil {
		logger.Warn("handleShowMeld: No session running.")
		return
	}

	request := showMeldRequest{}
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleShowMeld: Failed to unmarshal request: %v", err)
		return
	}

	events, err := state.App.ShowMeld(state.Session, domain.Seat(senderSeat), fromMeldDTOs(request.Melds))
	if err != nil {
		logger.Warn("handleShowMeld: User %s (seat %d) failed: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handlePeekHand(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if state.Session == nil || senderSeat < 0 {
		return
	}

	events, err := state.App.PeekHand(state.Session, domain.Seat(senderSeat))
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if state.Session == nil {
		logger.Warn("handlePlayCard: No session running.")
		return
	}

	request := playCardRequest{}
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCard: Failed to unmarshal request: %v", err)
		return
	}

	events, err := state.App.PlayCard(state.Session, domain.Seat(senderSeat), fromCardDTO(request.Card))
	if err != nil {
		logger.Warn("handlePlayCard: User %s (seat %d) failed to play card: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.pump(ctx, state, dispatcher, logger)
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload interface{}

	switch ev.Kind {
	case app.EventSessionStarted:
		opCode = OpSessionStarted
		p := ev.Payload.(app.SessionStartedPayload)
		payload = sessionStartedEvent{
			SessionID: p.SessionID,
			Variant:   string(p.Variant),
			WinScore:  p.WinScore,
			MaxRounds: p.MaxRounds,
		}
	case app.EventRoundStarted:
		opCode = OpRoundStarted
		p := ev.Payload.(app.RoundStartedPayload)
		e := roundStartedEvent{
			Round:     p.Round,
			Dealer:    int(p.Dealer),
			FirstTurn: int(p.FirstTurn),
		}
		if p.UpCard != nil {
			c := toCardDTO(*p.UpCard)
			e.UpCard = &c
		}
		payload = e
	case app.EventHandDealt:
		opCode = OpHandDealt
		p := ev.Payload.(app.HandDealtPayload)
		payload = handDealtEvent{Seat: int(p.Seat), Hand: toCardDTOs(p.Hand)}
	case app.EventBidPlaced:
		opCode = OpBidPlaced
		p := ev.Payload.(app.BidPlacedPayload)
		payload = bidPlacedEvent{Seat: int(p.Seat), Bid: toBidDTO(p.Bid), NextTurn: int(p.NextTurn)}
	case app.EventTrumpFixed:
		opCode = OpTrumpFixed
		p := ev.Payload.(app.TrumpFixedPayload)
		payload = trumpFixedEvent{Trump: int32(p.Trump), Maker: int(p.Maker), Alone: p.Alone, OrderedUp: p.OrderedUp}
	case app.EventBiddingClosed:
		opCode = OpBiddingClosed
		p := ev.Payload.(app.BiddingClosedPayload)
		payload = biddingClosedEvent{TeamBids: p.TeamBids, HighBid: p.HighBid, Maker: int(p.Maker)}
	case app.EventCardDiscarded:
		opCode = OpCardDiscarded
		p := ev.Payload.(app.CardDiscardedPayload)
		payload = cardDiscardedEvent{Seat: int(p.Seat), Card: toCardDTO(p.Card)}
	case app.EventMeldShown:
		opCode = OpMeldShown
		p := ev.Payload.(app.MeldShownPayload)
		payload = meldShownEvent{Seat: int(p.Seat), Melds: toMeldDTOs(p.Melds), Points: p.Points, TeamPoints: p.TeamPoints}
	case app.EventCardPlayed:
		opCode = OpCardPlayed
		p := ev.Payload.(app.CardPlayedPayload)
		payload = cardPlayedEvent{Seat: int(p.Seat), Card: toCardDTO(p.Card), NextTurn: int(p.NextTurn)}
	case app.EventTrickWon:
		opCode = OpTrickWon
		p := ev.Payload.(app.TrickWonPayload)
		payload = trickWonEvent{Winner: int(p.Winner), TrickNumber: p.TrickNumber, RoundDone: p.RoundDone}
	case app.EventRoundScored:
		opCode = OpRoundScored
		p := ev.Payload.(app.RoundScoredPayload)
		payload = roundScoredEvent{
			Round:      p.Result.Round,
			Summary:    p.Result.Summary,
			TeamPoints: p.Result.TeamPoints,
			TeamScores: p.TeamScores,
			TeamBags:   p.TeamBags,
		}
	case app.EventMisdeal:
		opCode = OpMisdeal
		p := ev.Payload.(app.MisdealPayload)
		payload = misdealEvent{Round: p.Round, Summary: p.Summary}
	case app.EventGameEnded:
		opCode = OpGameEnded
		p := ev.Payload.(app.GameEndedPayload)
		payload = gameEndedEvent{WinnerTeam: p.WinnerTeam, TeamScores: p.TeamScores, Rounds: p.Rounds}
	case app.EventRewardGranted:
		opCode = OpRewardGranted
		p := ev.Payload.(app.RewardGrantedPayload)
		payload = rewardGrantedEvent{
			Seat:            int(p.Seat),
			GoldDelta:       p.GoldDelta,
			XPDelta:         p.XPDelta,
			ReputationDelta: p.ReputationDelta,
		}
		mh.settleReward(ctx, state, logger, p)
	case app.EventActionForced:
		opCode = OpActionForced
		p := ev.Payload.(app.ActionForcedPayload)
		payload = actionForcedEvent{Seat: int(p.Seat)}
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if ev.TargetSeat != nil {
		userID := state.Seats[*ev.TargetSeat]
		if p, ok := state.Presences[userID]; ok {
			recipients = append(recipients, p)
		}

		// An intended recipient that is not connected (a bot or an
		// absent player) must not leak to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)

	if ev.Kind == app.EventGameEnded {
		// Session is over, return the table to the lobby.
		state.Session = nil
		state.TurnSeat = -1
		mh.updateLabel(state, dispatcher, logger)
	}
}

// settleReward applies one seat's settlement through the economy and
// progression ports. Bot seats have no wallets to touch.
func (mh *matchHandler) settleReward(ctx context.Context, state *MatchState, logger runtime.Logger, p app.RewardGrantedPayload) {
	userID := state.Seats[p.Seat]
	if userID == "" || isBotUserId(userID) {
		return
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	metadata := map[string]interface{}{
		"match_id": matchID,
		"reason":   "table_settlement",
	}

	if state.Economy != nil && p.GoldDelta != 0 {
		update := ports.WalletUpdate{UserID: userID, Amount: p.GoldDelta, Metadata: metadata}
		if err := state.Economy.UpdateBalances(ctx, []ports.WalletUpdate{update}); err != nil {
			logger.Error("Failed to update balance for %s: %v", userID, err)
		}
	}

	if state.Progression != nil && (p.XPDelta != 0 || p.ReputationDelta != 0) {
		update := ports.ProgressionUpdate{
			UserID:          userID,
			XPDelta:         p.XPDelta,
			ReputationDelta: p.ReputationDelta,
			Metadata:        metadata,
		}
		if err := state.Progression.ApplyUpdates(ctx, []ports.ProgressionUpdate{update}); err != nil {
			logger.Error("Failed to update progression for %s: %v", userID, err)
		}
	}
}

// sendError sends a gameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	payload := gameErrorEvent{
		Code:    code,
		Message: message,
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal gameErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Session != nil {
		phase = "playing"
	}

	label := matchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  string(state.Variant),
		Phase: phase,
	}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Table closed for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
