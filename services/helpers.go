package services

import "fmt"

// divisionRoom is the websocket room key for a division's live updates.
func divisionRoom(divisionID int) string {
	return fmt.Sprintf("division:%d", divisionID)
}
