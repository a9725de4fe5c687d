package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// ResourceGroupsClient is a minimal interface for the ARM resource groups client.
type ResourceGroupsClient interface {
	Get(ctx context.Context, name string) (armresources.ResourceGroup, error)
	CreateOrUpdate(ctx context.Context, name string, group armresources.ResourceGroup) (armresources.ResourceGroup, error)
	CheckExistence(ctx context.Context, name string) (bool, error)
	DeleteAndWait(ctx context.Context, name string) error
	StartDelete(ctx context.Context, name string) error
	// List returns every group in the subscription, optionally narrowed
	// by an OData filter such as tagName eq 'dept'.
	List(ctx context.Context, filter string) ([]*armresources.ResourceGroup, error)
}

type resourceGroupsClient struct {
	*armresources.ResourceGroupsClient
}

var _ ResourceGroupsClient = (*resourceGroupsClient)(nil)

func newResourceGroupsClient(s *Session) (ResourceGroupsClient, error) {
	c, err := armresources.NewResourceGroupsClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &resourceGroupsClient{c}, nil
}

func (c *resourceGroupsClient) Get(ctx context.Context, name string) (armresources.ResourceGroup, error) {
	resp, err := c.ResourceGroupsClient.Get(ctx, name, nil)
	if err != nil {
		return armresources.ResourceGroup{}, err
	}
	return resp.ResourceGroup, nil
}

func (c *resourceGroupsClient) CreateOrUpdate(ctx context.Context, name string, group armresources.ResourceGroup) (armresources.ResourceGroup, error) {
	resp, err := c.ResourceGroupsClient.CreateOrUpdate(ctx, name, group, nil)
	if err != nil {
		return armresources.ResourceGroup{}, err
	}
	return resp.ResourceGroup, nil
}

func (c *resourceGroupsClient) CheckExistence(ctx context.Context, name string) (bool, error) {
	resp, err := c.ResourceGroupsClient.CheckExistence(ctx, name, nil)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (c *resourceGroupsClient) DeleteAndWait(ctx context.Context, name string) error {
	poller, err := c.BeginDelete(ctx, name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *resourceGroupsClient) StartDelete(ctx context.Context, name string) error {
	_, err := c.BeginDelete(ctx, name, nil)
	return err
}

func (c *resourceGroupsClient) List(ctx context.Context, filter string) ([]*armresources.ResourceGroup, error) {
	opts := &armresources.ResourceGroupsClientListOptions{}
	if filter != "" {
		opts.Filter = to.Ptr(filter)
	}
	var out []*armresources.ResourceGroup
	pager := c.NewListPager(opts)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

// TagsClient is a minimal interface for the ARM subscription tags client.
type TagsClient interface {
	List(ctx context.Context) ([]*armresources.TagDetails, error)
	CreateOrUpdate(ctx context.Context, tagName string) (armresources.TagDetails, error)
	Delete(ctx context.Context, tagName string) error
	CreateOrUpdateValue(ctx context.Context, tagName, tagValue string) (armresources.TagValue, error)
	DeleteValue(ctx context.Context, tagName, tagValue string) error
}

type tagsClient struct {
	*armresources.TagsClient
}

var _ TagsClient = (*tagsClient)(nil)

func newTagsClient(s *Session) (TagsClient, error) {
	c, err := armresources.NewTagsClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &tagsClient{c}, nil
}

func (c *tagsClient) List(ctx context.Context) ([]*armresources.TagDetails, error) {
	var out []*armresources.TagDetails
	pager := c.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

func (c *tagsClient) CreateOrUpdate(ctx context.Context, tagName string) (armresources.TagDetails, error) {
	resp, err := c.TagsClient.CreateOrUpdate(ctx, tagName, nil)
	if err != nil {
		return armresources.TagDetails{}, err
	}
	return resp.TagDetails, nil
}

func (c *tagsClient) Delete(ctx context.Context, tagName string) error {
	_, err := c.TagsClient.Delete(ctx, tagName, nil)
	return err
}

func (c *tagsClient) CreateOrUpdateValue(ctx context.Context, tagName, tagValue string) (armresources.TagValue, error) {
	resp, err := c.TagsClient.CreateOrUpdateValue(ctx, tagName, tagValue, nil)
	if err != nil {
		return armresources.TagValue{}, err
	}
	return resp.TagValue, nil
}

func (c *tagsClient) DeleteValue(ctx context.Context, tagName, tagValue string) error {
	_, err := c.TagsClient.DeleteValue(ctx, tagName, tagValue, nil)
	return err
}

// DeploymentsClient is a minimal interface for the ARM deployments client.
type DeploymentsClient interface {
	Get(ctx context.Context, resourceGroup, name string) (armresources.DeploymentExtended, error)
	CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, deployment armresources.Deployment) (armresources.DeploymentExtended, error)
	StartCreateOrUpdate(ctx context.Context, resourceGroup, name string, deployment armresources.Deployment) error
	ValidateAndWait(ctx context.Context, resourceGroup, name string, deployment armresources.Deployment) (armresources.DeploymentValidateResult, error)
}

type deploymentsClient struct {
	*armresources.DeploymentsClient
}

var _ DeploymentsClient = (*deploymentsClient)(nil)

func newDeploymentsClient(s *Session) (DeploymentsClient, error) {
	c, err := armresources.NewDeploymentsClient(s.SubscriptionID, s.Credential, s.Options)
	if err != nil {
		return nil, err
	}
	return &deploymentsClient{c}, nil
}

func (c *deploymentsClient) Get(ctx context.Context, resourceGroup, name string) (armresources.DeploymentExtended, error) {
	resp, err := c.DeploymentsClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armresources.DeploymentExtended{}, err
	}
	return resp.DeploymentExtended, nil
}

func (c *deploymentsClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroup, name string, deployment armresources.Deployment) (armresources.DeploymentExtended, error) {
	poller, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, deployment, nil)
	if err != nil {
		return armresources.DeploymentExtended{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armresources.DeploymentExtended{}, err
	}
	return resp.DeploymentExtended, nil
}

func (c *deploymentsClient) StartCreateOrUpdate(ctx context.Context, resourceGroup, name string, deployment armresources.Deployment) error {
	_, err := c.BeginCreateOrUpdate(ctx, resourceGroup, name, deployment, nil)
	return err
}

func (c *deploymentsClient) ValidateAndWait(ctx context.Context, resourceGroup, name string, deployment armresources.Deployment) (armresources.DeploymentValidateResult, error) {
	poller, err := c.BeginValidate(ctx, resourceGroup, name, deployment, nil)
	if err != nil {
		return armresources.DeploymentValidateResult{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armresources.DeploymentValidateResult{}, err
	}
	return resp.DeploymentValidateResult, nil
}
