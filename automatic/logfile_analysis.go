package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// AnalyzeLogFile reads a drop log written by PlayCompVComp and rebuilds
// the batch summary from the last line of every game.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// gameID,turn,player,slot,score,totalscore,oppscore,round
	// Lines of one game are contiguous.
	type lastLine struct {
		id     string
		turn   int
		scores [2]int
	}
	summary := &Summary{}
	var cur *lastLine
	flush := func() {
		if cur == nil {
			return
		}
		summary.add(GameResult{
			ID:     cur.id,
			Scores: [2]uint{uint(cur.scores[0]), uint(cur.scores[1])},
			Drops:  cur.turn,
		})
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "gameID" {
			// this is the header line
			continue
		}
		if len(record) != 8 {
			return nil, fmt.Errorf("bad log line %v", record)
		}
		nums := make([]int, 0, 6)
		for _, f := range record[1:7] {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, err
			}
			nums = append(nums, n)
		}
		turn, player, total, opp := nums[0], nums[1]-1, nums[4], nums[5]
		if player < 0 || player > 1 {
			return nil, fmt.Errorf("bad player in log line %v", record)
		}
		if cur == nil || cur.id != record[0] || turn == 1 {
			flush()
			cur = &lastLine{id: record[0]}
		}
		cur.turn = turn
		cur.scores[player] = total
		cur.scores[1-player] = opp
	}
	flush()
	return summary, nil
}
