package spin

import (
	"fmt"
	"time"

	"librarium/models"
)

// Rand is the randomness a spin consumes. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

const dayLayout = "2006-01-02"

func dayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// SpinsToday counts ordinary spins already taken on now's calendar day,
// in now's location.
func SpinsToday(data *models.UserSpinData, now time.Time) int {
	today := dayKey(now)
	if data.SpinDay != "" {
		if data.SpinDay == today {
			return data.SpinsToday
		}
		return 0
	}
	// Documents written before the counter existed only know lastSpinDate.
	if data.LastSpinDate != nil && dayKey(data.LastSpinDate.In(now.Location())) == today {
		return 1
	}
	return 0
}

func dailyLimit(wheel *models.WheelSettings) int {
	if wheel.DailySpinLimit < 1 {
		return 1
	}
	return wheel.DailySpinLimit
}

// CanSpin reports whether the user may spin wheel at now: the wheel is active
// and either today's allowance is not used up or an extra spin is banked.
func CanSpin(data *models.UserSpinData, wheel *models.WheelSettings, now time.Time) bool {
	if data == nil || wheel == nil || !wheel.IsActive {
		return false
	}
	return SpinsToday(data, now) < dailyLimit(wheel) || data.ExtraSpins > 0
}

// SelectReward draws one reward with probability proportional to its weight.
// Weights are normalized by their sum, which need not be 100.
func SelectReward(active []models.Reward, rnd Rand) (models.Reward, error) {
	if len(active) == 0 {
		return models.Reward{}, ErrNoRewards
	}
	var total float64
	for _, r := range active {
		if r.Probability > 0 {
			total += r.Probability
		}
	}
	if total <= 0 {
		return models.Reward{}, ErrZeroWeight
	}

	x := rnd.Float64() * total
	var cumulative float64
	last := -1
	for i, r := range active {
		if r.Probability <= 0 {
			continue
		}
		cumulative += r.Probability
		last = i
		if cumulative >= x {
			return r, nil
		}
	}
	// Float accumulation can leave cumulative a hair below x.
	return active[last], nil
}

// Rotation is the wheel angle that lands the pointer on segment index:
// five full turns plus the offset of the segment's center.
func Rotation(index, count int) float64 {
	if count <= 0 || index < 0 {
		return 0
	}
	segment := 360.0 / float64(count)
	return 360*5 + 360 - (float64(index)*segment + segment/2)
}

// TimeUntilNextSpin is the HH:MM:SS countdown to the next local midnight,
// or zero when the user can already spin.
func TimeUntilNextSpin(data *models.UserSpinData, wheel *models.WheelSettings, now time.Time) string {
	if data == nil || data.LastSpinDate == nil || data.ExtraSpins > 0 {
		return "00:00:00"
	}
	if wheel != nil && SpinsToday(data, now) < dailyLimit(wheel) {
		return "00:00:00"
	}
	y, m, d := now.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	diff := midnight.Sub(now)
	if diff <= 0 {
		return "00:00:00"
	}
	secs := int(diff / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// applySpin updates the bookkeeping for one draw. It reports whether a
// banked extra spin paid for it.
func applySpin(data *models.UserSpinData, wheel *models.WheelSettings, reward models.Reward, now time.Time) bool {
	spent := SpinsToday(data, now)
	usedExtra := spent >= dailyLimit(wheel)

	data.SpinDay = dayKey(now)
	data.SpinsToday = spent
	if !usedExtra {
		data.SpinsToday++
	}

	at := now
	data.LastSpinDate = &at
	data.SpinCount++
	if usedExtra {
		data.ExtraSpins--
	}
	if reward.Type == models.RewardSpinAgain {
		data.ExtraSpins++
	}
	if reward.Type == models.RewardBorrowExtension {
		data.BorrowExtensionCount = 2
	}
	return usedExtra
}
