package model

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type GameMode string

const (
	GameModeRandom GameMode = "random"
	GameModeFriend GameMode = "friend"
	GameModeBot    GameMode = "bot"
)

type GameStatus string

const (
	GameStatusWaiting  GameStatus = "waiting"
	GameStatusPlaying  GameStatus = "playing"
	GameStatusFinished GameStatus = "finished"
)

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipDeclined FriendshipStatus = "declined"
)

// Color is a side of the board assigned to a paired player.
type Color string

const (
	ColorWhite Color = "white"
	ColorBlack Color = "black"
)

// GameResult is one player's outcome of a finished game.
type GameResult string

const (
	ResultWin  GameResult = "win"
	ResultLoss GameResult = "loss"
	ResultDraw GameResult = "draw"
)
