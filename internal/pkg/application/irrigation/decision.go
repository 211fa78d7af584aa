package irrigation

import (
	"fmt"
	"strconv"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

const DefaultThreshold float64 = 50.0

type Decision struct {
	State  types.MotorState
	Reason string
}

// Decide turns the motor ON when the moisture value is strictly above the threshold.
// A value equal to the threshold turns it OFF.
func Decide(value, threshold float64) Decision {
	if value > threshold {
		return Decision{
			State:  types.MotorOn,
			Reason: fmt.Sprintf("Moisture level %s%% exceeds threshold %s%%", percent(value), percent(threshold)),
		}
	}

	return Decision{
		State:  types.MotorOff,
		Reason: fmt.Sprintf("Moisture level %s%% is below or equal to threshold %s%%", percent(value), percent(threshold)),
	}
}

func percent(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
