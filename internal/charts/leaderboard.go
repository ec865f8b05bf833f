package charts

import (
	"fmt"
	"image/color"

	"github.com/leetdaily/bot/internal/models"
)

// barColors cycles across leaderboard rows.
var barColors = []color.NRGBA{
	{R: 0, G: 100, B: 0, A: 255},     // dark green
	{R: 144, G: 238, B: 144, A: 255}, // light green
	{R: 240, G: 200, B: 0, A: 255},   // yellow
	{R: 255, G: 165, B: 0, A: 255},   // orange
	{R: 220, G: 60, B: 50, A: 255},   // red
	{R: 128, G: 128, B: 128, A: 255}, // gray
}

// RenderLeaderboard draws a horizontal bar chart of solved counts, ranked
// top-down in the order the entries arrive (most solved first).
func RenderLeaderboard(entries []models.LeaderboardEntry) ([]byte, error) {
	dc := newContext()
	dc.DrawStringAnchored("LeetCode Leaderboard", chartWidth/2, marginTop/2, 0.5, 0.5)

	if len(entries) == 0 {
		dc.DrawStringAnchored("No scores submitted yet", chartWidth/2, chartHeight/2, 0.5, 0.5)
		return encodePNG(dc)
	}

	maxCount := entries[0].Solved
	for _, entry := range entries {
		if entry.Solved > maxCount {
			maxCount = entry.Solved
		}
	}

	plotWidth := float64(chartWidth - marginLeft - marginRight)
	plotHeight := float64(chartHeight - marginTop - marginBottom)
	rowHeight := plotHeight / float64(len(entries))
	barHeight := rowHeight * 0.7

	for i, entry := range entries {
		y := float64(marginTop) + float64(i)*rowHeight + (rowHeight-barHeight)/2
		barWidth := plotWidth * float64(entry.Solved) / float64(maxCount)

		setColor(dc, barColors[i%len(barColors)])
		dc.DrawRectangle(marginLeft, y, barWidth, barHeight)
		dc.Fill()

		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(entry.Name, marginLeft-10, y+barHeight/2, 1, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("%d", entry.Solved), marginLeft+barWidth+6, y+barHeight/2, 0, 0.5)
	}

	// X axis ticks along the bottom.
	step := tickInterval(maxCount)
	for tick := 0; tick <= maxCount; tick += step {
		x := marginLeft + plotWidth*float64(tick)/float64(maxCount)
		dc.DrawStringAnchored(fmt.Sprintf("%d", tick), x, chartHeight-marginBottom/2, 0.5, 0.5)
	}
	dc.DrawStringAnchored("Problems Solved", marginLeft+plotWidth/2, float64(chartHeight)-12, 0.5, 0.5)

	return encodePNG(dc)
}
