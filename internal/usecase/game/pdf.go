package game

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/mitre88/go-on-line/internal/domain/game"
)

const (
	boardOriginX = 40.0
	boardOriginY = 45.0
	cellSize     = 16.0
	stoneRadius  = cellSize * 0.45
)

const columnLabels = "ABCDEFGHJ"

// RenderPDF draws the session's final (or current) position with a short
// summary underneath.
func RenderPDF(w io.Writer, session game.Session) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Go game "+session.ID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Go Online")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, "Game "+session.ID)
	pdf.Ln(8)

	drawGrid(pdf)
	drawStones(pdf, session.State)
	drawSummary(pdf, session)

	return pdf.Output(w)
}

func cellCenter(pos game.Position) (float64, float64) {
	return boardOriginX + float64(pos.Col)*cellSize, boardOriginY + float64(pos.Row)*cellSize
}

func drawGrid(pdf *gofpdf.Fpdf) {
	last := float64(game.BoardSize-1) * cellSize

	pdf.SetFillColor(222, 184, 135)
	pdf.Rect(boardOriginX-cellSize*0.7, boardOriginY-cellSize*0.7, last+cellSize*1.4, last+cellSize*1.4, "F")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.SetFont("Helvetica", "", 9)
	for i := 0; i < game.BoardSize; i++ {
		off := float64(i) * cellSize
		pdf.Line(boardOriginX, boardOriginY+off, boardOriginX+last, boardOriginY+off)
		pdf.Line(boardOriginX+off, boardOriginY, boardOriginX+off, boardOriginY+last)

		pdf.Text(boardOriginX+off-1.2, boardOriginY-cellSize*0.8, string(columnLabels[i]))
		pdf.Text(boardOriginX-cellSize*1.1, boardOriginY+off+1.2, strconv.Itoa(game.BoardSize-i))
	}
}

func drawStones(pdf *gofpdf.Fpdf, state game.GameState) {
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			pos := game.Position{Row: r, Col: c}
			stone := state.Board.At(pos)
			if stone == game.Empty {
				continue
			}
			x, y := cellCenter(pos)
			pdf.SetDrawColor(0, 0, 0)
			if stone == game.Black {
				pdf.SetFillColor(0, 0, 0)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			pdf.Circle(x, y, stoneRadius, "FD")
		}
	}

	if state.LastMove != nil {
		x, y := cellCenter(*state.LastMove)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.6)
		pdf.Circle(x, y, stoneRadius*0.4, "D")
		pdf.SetLineWidth(0.3)
	}
}

func drawSummary(pdf *gofpdf.Fpdf, session game.Session) {
	score := game.FinalScore(session.State)
	lines := []string{
		fmt.Sprintf("Black: %s    White: %s", humanPlayerName, aiPlayerName),
		fmt.Sprintf("Status: %s    Turns played: %d", session.Status, len(session.Turns)),
		fmt.Sprintf("Captured stones - Black: %d, White: %d", session.State.CapturedBlack, session.State.CapturedWhite),
		fmt.Sprintf("Score - Black: %.1f, White: %.1f", score.Black, score.White),
	}
	if session.Result != nil {
		lines = append(lines, "Winner: "+session.Result.Winner)
	}

	pdf.SetY(boardOriginY + float64(game.BoardSize)*cellSize + 5)
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
}
