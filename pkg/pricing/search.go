package pricing

// Search bounds for SizeForPrice, matching the valid print size range.
const (
	searchMinWidth  = 30
	searchMaxWidth  = 300
	searchMinHeight = 30
	searchMaxHeight = 140
)

// searchSteps are the grid step sizes for the coarse-to-fine scan.
var searchSteps = []int{10, 2, 1}

// SizeForPrice finds a (width, height) pair whose base price is closest to
// targetPrice.
//
// The forward price function is piecewise across tier boundaries, so there is
// no closed-form inverse. Instead the search scans a grid coarse-to-fine:
// each pass narrows a ±20 cm window around the best candidate so far and
// halves the step size. The window bounds track the best candidate as it
// moves during the scan. Ties keep the earlier candidate; only a strictly
// smaller price difference replaces it, which makes the result deterministic.
func (c *Calculator) SizeForPrice(targetPrice int) (width, height int) {
	bestWidth, bestHeight := 50, 50
	closestDiff := -1

	for _, step := range searchSteps {
		for w := max(searchMinWidth, bestWidth-20); w <= min(searchMaxWidth, bestWidth+20); w += step {
			for h := max(searchMinHeight, bestHeight-20); h <= min(searchMaxHeight, bestHeight+20); h += step {
				diff := abs(c.BasePrice(w, h) - targetPrice)
				if closestDiff < 0 || diff < closestDiff {
					closestDiff = diff
					bestWidth = w
					bestHeight = h
				}
			}
		}
	}

	return bestWidth, bestHeight
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
