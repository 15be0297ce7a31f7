package entity

import "github.com/questx-lab/questboard/pkg/enum"

type CharacterClass string

var (
	ClassScout    = enum.New(CharacterClass("scout"))
	ClassSage     = enum.New(CharacterClass("sage"))
	ClassChampion = enum.New(CharacterClass("champion"))
	ClassMerchant = enum.New(CharacterClass("merchant"))
)

type User struct {
	Base
	Name            string
	CharacterClass  CharacterClass
	Level           int
	TotalXP         int64
	TotalCommission float64
	StreakDays      int
}
