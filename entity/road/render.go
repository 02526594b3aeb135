package road

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	egoMarker  = " *** "
	emptyCell  = "     "
	labelEvery = 20 // 每隔多少米标注一次距离
)

// Render 以文本形式绘制主车附近的道路
// 功能：每行1米，每列一条车道，主车标记为***，他车标记为三位ID
func (r *Road) Render(step int32) string {
	sMin := max(r.cameraCenter-r.updateWidth/2, 0)
	rows := int(r.updateWidth)
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, r.NumLanes())
		for j := range grid[i] {
			grid[i][j] = emptyCell
		}
	}
	place := func(lane int, s float64, marker string) {
		row := int(s - sMin)
		if s < sMin || row >= rows || lane < 0 || lane >= r.NumLanes() {
			return
		}
		grid[row][lane] = marker
	}
	// 同一格有多辆车时ID较大者覆盖
	ids := slices.Sorted(maps.Keys(r.vehicles))
	for _, id := range ids {
		v := r.vehicles[id]
		place(v.Lane, v.S, fmt.Sprintf(" %03d ", id))
	}
	if r.ego != nil {
		place(r.ego.Lane, r.ego.S, egoMarker)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "+Meters ======================+ step: %d\n", step)
	for i, row := range grid {
		if s := int(sMin) + i; s%labelEvery == 0 {
			fmt.Fprintf(&b, "%03d - ", s)
		} else {
			b.WriteString("      ")
		}
		for _, cell := range row {
			b.WriteString("|")
			b.WriteString(cell)
		}
		b.WriteString("|\n")
	}
	return b.String()
}
