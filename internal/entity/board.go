package entity

type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"

	// HumanMark always moves first, BotMark answers.
	HumanMark = PlayerX
	BotMark   = PlayerO
)

// WinCombos - rows, then columns, then diagonals. The order is relied upon by the medium bot.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// Board - 3x3 grid stored row-major, indices 0..8.
type Board [9]Mark

// HasLine reports whether any of the winning lines is fully occupied by mark.
func (that Board) HasLine(mark Mark) bool {
	if !mark.IsPlayer() {
		return false
	}

	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// LegalMoves - empty cell indices in ascending order.
func (that Board) LegalMoves() []int {
	moves := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			moves = append(moves, i)
		}
	}

	return moves
}

// Evaluate - returns the outcome of the board. A won line takes precedence over a full board.
func (that Board) Evaluate() Outcome {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Outcome{Status: StatusWon, Winner: a}
		}
	}

	// the game will continue until all the squares are full
	if !that.IsFull() {
		return Outcome{Status: StatusOngoing}
	}

	return Outcome{Status: StatusDraw}
}
