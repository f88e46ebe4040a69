package model

// DeletePolicy 外键删除策略
type DeletePolicy string

const (
	Cascade DeletePolicy = "CASCADE"
	SetNull DeletePolicy = "SET NULL"
)

// Relation 描述一条外键关系及其删除策略
type Relation struct {
	Table    string
	Column   string
	RefTable string
	OnDelete DeletePolicy
}

// DeletePolicies 与各模型 constraint 标签保持一致，测试据此逐条校验
var DeletePolicies = []Relation{
	{Table: "posts", Column: "author_id", RefTable: "users", OnDelete: Cascade},
	{Table: "posts", Column: "group_id", RefTable: "groups", OnDelete: SetNull},
	{Table: "comments", Column: "post_id", RefTable: "posts", OnDelete: Cascade},
	{Table: "comments", Column: "author_id", RefTable: "users", OnDelete: Cascade},
	{Table: "follows", Column: "follower_id", RefTable: "users", OnDelete: Cascade},
	{Table: "follows", Column: "followee_id", RefTable: "users", OnDelete: Cascade},
}

// Models 按外键依赖顺序排列，用于迁移
func Models() []interface{} {
	return []interface{}{&User{}, &Group{}, &Post{}, &Comment{}, &Follow{}}
}
