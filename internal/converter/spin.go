package converter

import (
	dto "slot_engine/internal/api/dto/spin"
	"slot_engine/internal/model"
)

func ToBetContext(req dto.SpinRequest) model.BetContext {
	return model.BetContext{
		Bet:              req.Bet,
		ActivePaylineIDs: req.PaylineIDs,
		ForceWin:         req.ForceWin,
	}
}

func ToSpinResponse(res model.SpinResult) dto.SpinResponse {
	out := res.Outcome
	return dto.SpinResponse{
		Grid:               toGrid(out.Grid),
		Wins:               toWins(out.Wins),
		TotalWin:           out.TotalWin,
		ScatterCount:       out.ScatterCount,
		AwardedFreeSpins:   out.AwardedFreeSpins,
		BonusTriggered:     out.BonusTriggered,
		FreeSpinsTriggered: out.FreeSpinsTriggered,
		JackpotTriggered:   out.JackpotTriggered,
		Balance:            res.Balance,
		FreeSpinCount:      res.FreeSpinCount,
		InFreeSpin:         res.InFreeSpin,
	}
}

func ToDataResponse(data model.Data) dto.DataResponse {
	return dto.DataResponse{
		Balance:       data.Balance,
		FreeSpinCount: data.FreeSpinCount,
	}
}

func ToEvent(ev model.SpinEvent) dto.Event {
	out := dto.Event{
		Type:     string(ev.Type),
		Reel:     ev.Reel,
		TotalWin: ev.TotalWin,
	}
	if len(ev.Symbols) > 0 {
		out.Symbols = toSymbols(ev.Symbols)
	}
	if len(ev.Wins) > 0 {
		out.Wins = toWins(ev.Wins)
	}
	return out
}

func toGrid(grid model.Grid) [][]string {
	out := make([][]string, len(grid))
	for i, reel := range grid {
		out[i] = toSymbols(reel)
	}
	return out
}

func toSymbols(symbols []model.SymbolID) []string {
	out := make([]string, len(symbols))
	for i, sym := range symbols {
		out[i] = sym.String()
	}
	return out
}

func toWins(wins []model.WinResult) []dto.Win {
	out := make([]dto.Win, len(wins))
	for i, w := range wins {
		positions := make([]dto.Cell, len(w.Positions))
		for j, p := range w.Positions {
			positions[j] = dto.Cell{Reel: p.Reel, Row: p.Row}
		}
		out[i] = dto.Win{
			PaylineID:  w.PaylineID,
			Symbol:     w.Symbol.String(),
			MatchCount: w.MatchCount,
			WinAmount:  w.WinAmount,
			Positions:  positions,
			WinType:    w.WinType.String(),
			Multiplier: w.Multiplier,
		}
	}
	return out
}
