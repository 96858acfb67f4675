package department

// Department は部署エンティティです。このサービスからは読み取り専用です。
type Department struct {
	Name        string
	Description string
	Company     string
}
