package spin

type SpinRequest struct {
	Bet        int64 `json:"bet"`                   // Размер ставки (положительное целое, >0)
	PaylineIDs []int `json:"payline_ids,omitempty"` // Выбранные линии; пусто — все активные
	ForceWin   bool  `json:"force_win,omitempty"`   // Отладочный форс выигрыша
}

type BonusSpinRequest struct {
	Bet int64 `json:"bet"` // Ставка для расчёта цены бонуски
}

type SlamStopRequest struct {
	Reel *int `json:"reel,omitempty"` // Номер барабана; пусто — остановить всё
}

type Cell struct {
	Reel int `json:"reel"`
	Row  int `json:"row"`
}

type Win struct {
	PaylineID  int    `json:"payline_id"` // 0 — скаттерный выигрыш
	Symbol     string `json:"symbol"`
	MatchCount int    `json:"match_count"`
	WinAmount  int64  `json:"win_amount"`
	Positions  []Cell `json:"positions"`
	WinType    string `json:"win_type"`
	Multiplier int64  `json:"multiplier"`
}

type SpinResponse struct {
	Grid               [][]string `json:"grid"` // Символы по барабанам
	Wins               []Win      `json:"wins"`
	TotalWin           int64      `json:"total_win"`
	ScatterCount       int        `json:"scatter_count"`
	AwardedFreeSpins   int        `json:"awarded_free_spins"`
	BonusTriggered     bool       `json:"bonus_triggered"`
	FreeSpinsTriggered bool       `json:"free_spins_triggered"`
	JackpotTriggered   bool       `json:"jackpot_triggered"`
	Balance            int64      `json:"balance"`
	FreeSpinCount      int        `json:"free_spin_count"`
	InFreeSpin         bool       `json:"in_free_spin"`
}

type DataResponse struct {
	Balance       int64 `json:"balance"`
	FreeSpinCount int   `json:"free_spin_count"`
}

type Event struct {
	Type     string   `json:"type"`
	Reel     int      `json:"reel,omitempty"`
	Symbols  []string `json:"symbols,omitempty"`
	Wins     []Win    `json:"wins,omitempty"`
	TotalWin int64    `json:"total_win,omitempty"`
}
