package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var rowOrder = []byte{'A', 'B', 'C'}

// Renderer - writes boards and messages to a terminal using the colors its profile supports.
type Renderer struct {
	out     io.Writer
	profile termenv.Profile
}

func NewRenderer(out io.Writer, profile termenv.Profile) *Renderer {
	return &Renderer{
		out:     out,
		profile: profile,
	}
}

func (that *Renderer) Board(game *tictactoe.Game) {
	var sb strings.Builder

	sb.WriteString("\n")
	for _, row := range rowOrder {
		cells := make([]string, 0, len(board.Rows[row]))
		for _, space := range board.Rows[row] {
			cells = append(cells, that.cell(game, space))
		}

		sb.WriteString("\t")
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}

	fmt.Fprint(that.out, sb.String())
}

func (that *Renderer) cell(game *tictactoe.Game, space board.Space) string {
	switch marker := game.MarkerFor(space); marker {
	case entity.MarkerX:
		return that.paint(marker+" ", termenv.ANSIMagenta)
	case entity.MarkerO:
		return that.paint(marker+" ", termenv.ANSICyan)
	default:
		return that.paint(string(space), termenv.ANSIBrightBlack)
	}
}

// Result - the end of game message as seen by perspective. A nil perspective names the winner by marker.
func (that *Renderer) Result(game *tictactoe.Game, perspective *tictactoe.Player) {
	fmt.Fprintf(that.out, "%s\n\n", that.resultMessage(game, perspective))
}

func (that *Renderer) resultMessage(game *tictactoe.Game, perspective *tictactoe.Player) string {
	winner := game.Winner()

	switch {
	case !game.IsFinished():
		return that.paint("Game suspended: "+game.ID(), termenv.ANSIYellow)
	case winner == nil:
		return that.paint("It's a Tie...", termenv.ANSIYellow)
	case perspective == nil:
		marker := entity.MarkerX
		if winner.ID() == game.Player2().ID() {
			marker = entity.MarkerO
		}
		return that.paint(marker+" Wins!!!", termenv.ANSIGreen)
	case winner.ID() == perspective.ID():
		return that.paint("You Win!!!", termenv.ANSIGreen)
	default:
		return that.paint("You Lost...", termenv.ANSIRed)
	}
}

func (that *Renderer) Prompt() {
	fmt.Fprint(that.out, "Select a space: ")
}

func (that *Renderer) Error(message string) {
	fmt.Fprintf(that.out, "%s\t%s\n", that.paint("error:", termenv.ANSIRed), message)
}

func (that *Renderer) Info(message string) {
	fmt.Fprintln(that.out, message)
}

func (that *Renderer) paint(text string, color termenv.Color) string {
	return that.profile.String(text).Foreground(that.profile.Convert(color)).String()
}
