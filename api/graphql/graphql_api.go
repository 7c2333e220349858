package graphql

import (
	"errors"
	"strconv"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"starter.GO/api"
	entity "starter.GO/model/entity"
	userRepo "starter.GO/model/repository/user"
)

func init() {
	api.RegisterRoute(RegisterGraphQLRoutes)
}

// Schema exposes a read-only users query; mutations stay on the REST surface.
const Schema = `
	schema {
		query: Query
	}
	type Query {
		users(page: Int, size: Int): UserPage!
		user(id: ID!): User
	}
	type User {
		id: ID!
		name: String!
		email: String!
		isActive: Boolean!
	}
	type UserPage {
		total: Int!
		items: [User!]!
	}
`

func RegisterGraphQLRoutes(e *echo.Echo, db *gorm.DB) {
	schema := graphql.MustParseSchema(Schema, &RootResolver{repo: userRepo.NewUserRepository(db)})
	h := &relay.Handler{Schema: schema}
	e.POST("/graphql", echo.WrapHandler(h))
}

type RootResolver struct {
	repo *userRepo.UserRepository
}

func (r *RootResolver) Users(args struct {
	Page *int32
	Size *int32
}) (*UserPageResolver, error) {
	size := int32(20)
	if args.Size != nil && *args.Size > 0 {
		size = *args.Size
	}
	page := int32(1)
	if args.Page != nil && *args.Page > 0 {
		page = *args.Page
	}
	users, total, err := r.repo.List(int(size), int((page-1)*size))
	if err != nil {
		return nil, err
	}
	return &UserPageResolver{users: users, total: int32(total)}, nil
}

func (r *RootResolver) User(args struct{ ID graphql.ID }) (*UserResolver, error) {
	id, err := strconv.ParseUint(string(args.ID), 10, 32)
	if err != nil {
		return nil, errors.New("invalid user id")
	}
	u, err := r.repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &UserResolver{u: u}, nil
}

type UserPageResolver struct {
	users []entity.User
	total int32
}

func (r *UserPageResolver) Total() int32 {
	return r.total
}

func (r *UserPageResolver) Items() []*UserResolver {
	out := make([]*UserResolver, 0, len(r.users))
	for i := range r.users {
		out = append(out, &UserResolver{u: &r.users[i]})
	}
	return out
}

type UserResolver struct {
	u *entity.User
}

func (r *UserResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatUint(uint64(r.u.UserID), 10))
}

func (r *UserResolver) Name() string {
	return r.u.Name
}

func (r *UserResolver) Email() string {
	return r.u.Email
}

func (r *UserResolver) IsActive() bool {
	return r.u.IsActive == 1
}
