package models

// User представляет пользователя системы: клиента или дилера.
// Дилер может добавлять и удалять автомобили и заводить клиентов.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	IsDealer     bool   `json:"isDealer"`
}

// DummyUser используется для приёма данных регистрации
// и создания клиента дилером.
type DummyUser struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// DummyCredentials — входные данные для входа.
type DummyCredentials struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// DummyUserUpdate используется для частичного обновления клиента.
// Незаполненные поля (nil) не изменяют сохранённые значения.
type DummyUserUpdate struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=50"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
}

// UserPatch — подготовленное частичное обновление для хранилища:
// пароль уже превращён в хэш.
type UserPatch struct {
	Username     *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
}
