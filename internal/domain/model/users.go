package model

// UserRole ユーザー種別（寄付者 or 受取団体）
// 自由入力の文字列ではなく閉じた型として扱い、不正な種別を排除する
type UserRole string

const (
	UserRoleDonor    UserRole = "donor"
	UserRoleReceiver UserRole = "receiver"
)

// IsValid 定義済みのユーザー種別かどうかを判定する
func (r UserRole) IsValid() bool {
	return r == UserRoleDonor || r == UserRoleReceiver
}

// User 寄付者または受取団体（NGO・シェルターなど）
type User struct {
	ID       string    `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Role     UserRole  `json:"role" db:"role"`
	Address  string    `json:"address" db:"address"`
	Location *Location `json:"location"` // ジオコーディング未解決の場合はnil
}

// ToLatLng 位置情報をLatLngに変換する（位置未登録の場合はfalse）
func (u *User) ToLatLng() (LatLng, bool) {
	if u == nil || u.Location == nil {
		return LatLng{}, false
	}
	return LatLng{Lat: u.Location.Latitude, Lng: u.Location.Longitude}, true
}

// Location 保存用の位置情報
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LatLng 距離計算用の座標ペア
type LatLng struct {
	Lat float64
	Lng float64
}
