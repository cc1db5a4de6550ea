package audits

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/routes"
	"philcali.me/movies/internal/routes/util"
)

type AuditService struct {
	data      data.AuditRepository
	indexName string
}

func NewRouteWithIndex(data data.AuditRepository, indexName string) routes.Service {
	return &AuditService{
		data:      data,
		indexName: indexName,
	}
}

func _convertAudit(auditDTO data.AuditDTO) Audit {
	var expiresIn *time.Time
	if auditDTO.ExpiresIn != nil {
		expiresIn = aws.Time(time.UnixMilli(int64(*auditDTO.ExpiresIn)))
	}
	return Audit{
		CreateTime:   auditDTO.CreateTime,
		UpdateTime:   auditDTO.UpdateTime,
		Action:       auditDTO.Action,
		ResourceType: auditDTO.ResourceType,
		ResourceId:   auditDTO.ResourceId,
		Message:      auditDTO.Message,
		ExpiresIn:    expiresIn,
		Id:           auditDTO.SK,
	}
}

func (as *AuditService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/audits":             util.AuthorizedRoute(as.ListAudits),
		"DELETE:/audits/:auditId": util.AuthorizedRoute(as.DeleteAudit),
	}
}

func (as *AuditService) ListAudits(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeListByIndex[data.AuditDTO, data.AuditInputDTO](as.data, _convertAudit, as.indexName, event, ctx)
}

func (as *AuditService) DeleteAudit(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := as.data.Delete(ctx, util.Username(ctx), util.RequestParam(ctx, "auditId"))
	return util.SerializeResponseNoContent(err)
}
