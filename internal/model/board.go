package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

func (p PieceType) isValid() bool {
	switch p {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return true
	}
	return false
}

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Piece is an immutable (kind, color) tag. The zero value is an empty cell.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == ""
}

func (p Piece) isValid() bool {
	return p.Type.isValid() && p.Color.isValid()
}

// Position addresses a square. X is the file (0 = a), Y is the rank index
// with 0 being black's back rank.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return p.getSquareNotation()
}

func (p Position) getSquareNotation() string {
	if !boundaryCheck(p) {
		return "??"
	}
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", p.X+97)
}

// ParsePosition reads a square in algebraic form such as "e4".
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, fmt.Errorf("invalid square %q", s)
	}
	return Position{X: int(s[0] - 'a'), Y: 8 - int(s[1]-'0')}, nil
}

func boundaryCheck(position Position) bool {
	return position.X >= 0 && position.X < 8 && position.Y >= 0 && position.Y < 8
}

func clonePosition(p *Position) *Position {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// Board is an 8x8 grid indexed [Y][X]. Being an array of values, assigning a
// Board copies it completely.
type Board [8][8]Piece

func (b *Board) At(p Position) (Piece, bool) {
	if !boundaryCheck(p) {
		return Piece{}, false
	}
	pc := b[p.Y][p.X]
	return pc, !pc.IsEmpty()
}

func (b *Board) set(p Position, pc Piece) {
	b[p.Y][p.X] = pc
}

func (b *Board) clear(p Position) {
	b[p.Y][p.X] = Piece{}
}

// findKing returns the square of color's king. A board without that king is
// not reachable through legal play, so its absence is a programming error.
func (b *Board) findKing(color Color) Position {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if pc := b[y][x]; pc.Type == King && pc.Color == color {
				return Position{X: x, Y: y}
			}
		}
	}
	panic(fmt.Sprintf("model: no %s king on board", color))
}

func (b *Board) countKings() (white, black int) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if b[y][x].Type != King {
				continue
			}
			if b[y][x].Color == White {
				white++
			} else {
				black++
			}
		}
	}
	return white, black
}

// Key is the canonical serialization used for repetition counting: one
// character per square, rank index 0 first, uppercase for white.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			sb.WriteByte(b[y][x].symbol())
		}
	}
	return sb.String()
}

func (p Piece) symbol() byte {
	var c byte
	switch p.Type {
	case King:
		c = 'k'
	case Queen:
		c = 'q'
	case Rook:
		c = 'r'
	case Bishop:
		c = 'b'
	case Knight:
		c = 'n'
	case Pawn:
		c = 'p'
	default:
		return '.'
	}
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

// MarshalJSON renders the board as rows of nullable pieces, the shape the
// view layer already consumes.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, 8)
	for y := 0; y < 8; y++ {
		rows[y] = make([]*Piece, 8)
		for x := 0; x < 8; x++ {
			if pc := b[y][x]; !pc.IsEmpty() {
				rows[y][x] = &pc
			}
		}
	}
	return json.Marshal(rows)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]*Piece
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != 8 {
		return fmt.Errorf("board has %d rows", len(rows))
	}
	var out Board
	for y, row := range rows {
		if len(row) != 8 {
			return fmt.Errorf("board row %d has %d cells", y, len(row))
		}
		for x, pc := range row {
			if pc == nil {
				continue
			}
			if !pc.isValid() {
				return fmt.Errorf("invalid piece %q/%q at %s", pc.Type, pc.Color, Position{X: x, Y: y})
			}
			out[y][x] = *pc
		}
	}
	*b = out
	return nil
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func newBoard() Board {
	var board Board
	for x := 0; x < 8; x++ {
		board[0][x] = Piece{Type: backRank[x], Color: Black}
		board[1][x] = Piece{Type: Pawn, Color: Black}
		board[6][x] = Piece{Type: Pawn, Color: White}
		board[7][x] = Piece{Type: backRank[x], Color: White}
	}
	return board
}
