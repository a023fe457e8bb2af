package models

// Friendship is one directed edge of a friendship. A friendship between A and
// B is always stored as the pair (A,B) and (B,A).
type Friendship struct {
	UserID   uint `gorm:"primaryKey;autoIncrement:false;check:chk_friends_not_self,user_id <> friend_id" json:"user_id"`
	FriendID uint `gorm:"primaryKey;autoIncrement:false;index" json:"friend_id"`

	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Friend User `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friends"
}
