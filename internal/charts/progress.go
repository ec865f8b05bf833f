package charts

import (
	"fmt"
	"image/color"

	"github.com/leetdaily/bot/internal/models"
)

var progressColors = map[models.Difficulty]color.NRGBA{
	models.DifficultyEasy:   {R: 0, G: 150, B: 60, A: 255},
	models.DifficultyMedium: {R: 255, G: 165, B: 0, A: 255},
	models.DifficultyHard:   {R: 220, G: 60, B: 50, A: 255},
}

// RenderProgress draws one cumulative line per difficulty over the user's
// day-ordered progress series.
func RenderProgress(series []models.ProgressPoint) ([]byte, error) {
	dc := newContext()
	dc.DrawStringAnchored("User Progress", chartWidth/2, marginTop/2, 0.5, 0.5)

	if len(series) == 0 {
		dc.DrawStringAnchored("No scores submitted yet", chartWidth/2, chartHeight/2, 0.5, 0.5)
		return encodePNG(dc)
	}

	maxCount := 1
	for _, point := range series {
		for _, v := range []int{point.Easy, point.Medium, point.Hard} {
			if v > maxCount {
				maxCount = v
			}
		}
	}

	plotWidth := float64(chartWidth - marginLeft - marginRight)
	plotHeight := float64(chartHeight - marginTop - marginBottom)

	xAt := func(i int) float64 {
		if len(series) == 1 {
			return marginLeft + plotWidth/2
		}
		return marginLeft + plotWidth*float64(i)/float64(len(series)-1)
	}
	yAt := func(count int) float64 {
		return float64(marginTop) + plotHeight - plotHeight*float64(count)/float64(maxCount)
	}

	lines := []struct {
		level models.Difficulty
		value func(models.ProgressPoint) int
	}{
		{models.DifficultyEasy, func(p models.ProgressPoint) int { return p.Easy }},
		{models.DifficultyMedium, func(p models.ProgressPoint) int { return p.Medium }},
		{models.DifficultyHard, func(p models.ProgressPoint) int { return p.Hard }},
	}

	for _, line := range lines {
		setColor(dc, progressColors[line.level])
		dc.SetLineWidth(2)
		for i, point := range series {
			if i == 0 {
				dc.MoveTo(xAt(i), yAt(line.value(point)))
			} else {
				dc.LineTo(xAt(i), yAt(line.value(point)))
			}
		}
		dc.Stroke()

		for i, point := range series {
			dc.DrawCircle(xAt(i), yAt(line.value(point)), 3)
			dc.Fill()
		}
	}

	// Y axis ticks and legend.
	dc.SetRGB(0, 0, 0)
	step := tickInterval(maxCount)
	for tick := 0; tick <= maxCount; tick += step {
		dc.DrawStringAnchored(fmt.Sprintf("%d", tick), marginLeft-10, yAt(tick), 1, 0.5)
	}
	dc.DrawStringAnchored("Problems Solved", marginLeft-10, marginTop-14, 1, 0.5)

	legendX := float64(chartWidth - marginRight - 120)
	for i, level := range models.AllDifficulties() {
		y := float64(marginTop) + float64(i)*18
		setColor(dc, progressColors[level])
		dc.DrawRectangle(legendX, y-5, 12, 10)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(level.String(), legendX+18, y, 0, 0.5)
	}

	firstDay := series[0].Day.Format("2006-01-02")
	lastDay := series[len(series)-1].Day.Format("2006-01-02")
	dc.DrawStringAnchored(firstDay, xAt(0), chartHeight-marginBottom/2, 0.5, 0.5)
	if len(series) > 1 {
		dc.DrawStringAnchored(lastDay, xAt(len(series)-1), chartHeight-marginBottom/2, 0.5, 0.5)
	}

	return encodePNG(dc)
}
