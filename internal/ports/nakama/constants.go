package nakama

const (
	// RpcFindTable is the Nakama RPC id clients call to find or create an open saloon table.
	RpcFindTable = "find_table"

	// MatchNameSaloonTable is the authoritative match handler name registered with Nakama.
	MatchNameSaloonTable = "saloon_table"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame    int64 = 1
	OpSubmitBid    int64 = 2
	OpDeclareTrump int64 = 3
	OpDiscardCard  int64 = 4
	OpShowMeld     int64 = 5
	OpPeekHand     int64 = 6
	OpPlayCard     int64 = 7

	// Server -> Client events
	OpTableState     int64 = 101
	OpSessionStarted int64 = 102
	OpRoundStarted   int64 = 103
	OpHandDealt      int64 = 104 // send privately
	OpBidPlaced      int64 = 105
	OpTrumpFixed     int64 = 106
	OpBiddingClosed  int64 = 107
	OpCardDiscarded  int64 = 108 // send privately
	OpMeldShown      int64 = 109
	OpCardPlayed     int64 = 110
	OpTrickWon       int64 = 111
	OpRoundScored    int64 = 112
	OpMisdeal        int64 = 113
	OpGameEnded      int64 = 114
	OpRewardGranted  int64 = 115
	OpActionForced   int64 = 116
	OpGameError      int64 = 120
)
